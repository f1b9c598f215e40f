package foodscout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestGeocoderAdapter(t *testing.T) {
	called := false
	mock := &mockGeocoder{
		fn: func(_ context.Context, address string) (Location, error) {
			called = true
			if address != "1 Main St Austin, TX 78701" {
				t.Errorf("unexpected address: %q", address)
			}
			return Location{Latitude: 30.2672, Longitude: -97.7431}, nil
		},
	}

	adapter := &geocoderAdapter{inner: mock}
	g, err := adapter.Geocode(context.Background(), "1 Main St Austin, TX 78701")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("inner geocoder was not called")
	}
	if g.Latitude != 30.2672 || g.Longitude != -97.7431 {
		t.Errorf("unexpected coordinates: %+v", g)
	}
}

func TestGeocoderAdapter_Error(t *testing.T) {
	mock := &mockGeocoder{
		fn: func(_ context.Context, _ string) (Location, error) {
			return Location{}, errors.New("provider down")
		},
	}

	adapter := &geocoderAdapter{inner: mock}
	if _, err := adapter.Geocode(context.Background(), "somewhere"); err == nil {
		t.Fatal("expected error from adapter")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret")(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass")(cfg2)
	if cfg2.driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg2.driver)
	}

	cfg3 := &clientConfig{}
	WithKeyPrefix("tenant42:")(cfg3)
	if cfg3.keyPrefix != "tenant42:" {
		t.Errorf("keyPrefix = %q, want tenant42:", cfg3.keyPrefix)
	}

	WithDefaultRadius(10)(cfg3)
	if cfg3.defaultRadius != 10 {
		t.Errorf("defaultRadius = %v, want 10", cfg3.defaultRadius)
	}

	WithGeocodeTimeout(5 * time.Second)(cfg3)
	if cfg3.geocodeTimeout != 5*time.Second {
		t.Errorf("geocodeTimeout = %v, want 5s", cfg3.geocodeTimeout)
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestWithGeocoder(t *testing.T) {
	mock := &mockGeocoder{
		fn: func(_ context.Context, _ string) (Location, error) {
			return Location{}, nil
		},
	}
	cfg := &clientConfig{}
	WithGeocoder(mock)(cfg)
	if cfg.geocoder == nil {
		t.Error("expected non-nil geocoder")
	}
}

type mockGeocoder struct {
	fn func(ctx context.Context, address string) (Location, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (Location, error) {
	return m.fn(ctx, address)
}
