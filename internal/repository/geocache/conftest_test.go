package geocache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

// mockGeocoder is a func-free inner geocoder with canned behavior.
type mockGeocoder struct {
	result domain.Geolocation
	err    error
	calls  int
}

func (m *mockGeocoder) Geocode(_ context.Context, _ string) (domain.Geolocation, error) {
	m.calls++
	if m.err != nil {
		return domain.Geolocation{}, m.err
	}
	return m.result, nil
}

func newTestCachedGeocoder(t *testing.T, inner domain.Geocoder) (*CachedGeocoder, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	cg := New(inner, ms, time.Hour, nil, zap.NewNop())
	return cg, ms
}
