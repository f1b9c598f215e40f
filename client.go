// Package foodscout is the embedded SDK: the same search and admin
// pipeline the API server runs, wired directly over a Redis or Valkey
// connection without the HTTP layer.
package foodscout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/db"
	dbRedis "github.com/battlebranding/food-scout/internal/db/redis"
	dbValkey "github.com/battlebranding/food-scout/internal/db/valkey"
	"github.com/battlebranding/food-scout/internal/domain"
	foodrepo "github.com/battlebranding/food-scout/internal/repository/food"
	relationrepo "github.com/battlebranding/food-scout/internal/repository/relation"
	restaurantrepo "github.com/battlebranding/food-scout/internal/repository/restaurant"
	tasterepo "github.com/battlebranding/food-scout/internal/repository/taste"
	fooduc "github.com/battlebranding/food-scout/internal/usecase/food"
	restaurantuc "github.com/battlebranding/food-scout/internal/usecase/restaurant"
	tasteuc "github.com/battlebranding/food-scout/internal/usecase/taste"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultGeocodeTimeout   = 30 * time.Second
)

// Client is the foodscout SDK entry point.
type Client struct {
	store    db.Store
	restSvc  *restaurantuc.Service
	foodSvc  *fooduc.Service
	tasteSvc *tasteuc.Service
}

// New creates a foodscout Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		geocodeTimeout: defaultGeocodeTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("foodscout: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("foodscout: database not ready: %w", err)
	}

	if cfg.keyPrefix != "" {
		domain.KeyPrefix = cfg.keyPrefix
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("foodscout: create valkey store: %w", err)
		}
		return s, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("foodscout: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("foodscout: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	restRepo := restaurantrepo.New(store)
	foodRepo := foodrepo.New(store)
	tasteRepo := tasterepo.New(store)
	relRepo := relationrepo.New(store, anomalyCounter(), cfg.logger)

	var geocoder domain.Geocoder
	if cfg.geocoder != nil {
		geocoder = &geocoderAdapter{inner: cfg.geocoder}
	}

	return &Client{
		store: store,
		restSvc: restaurantuc.New(
			restRepo, relRepo, geocoder, cfg.geocodeTimeout, cfg.logger,
		),
		foodSvc: fooduc.New(
			foodRepo, restRepo, relRepo, tasteRepo, cfg.defaultRadius, cfg.logger,
		),
		tasteSvc: tasteuc.New(tasteRepo),
	}
}

// Close drains background geocodes and releases all resources.
func (c *Client) Close() {
	if c.restSvc != nil {
		c.restSvc.WaitGeocodes()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Restaurants returns the restaurant service.
func (c *Client) Restaurants() *RestaurantService {
	return &RestaurantService{svc: c.restSvc}
}

// Food returns the food search and admin service.
func (c *Client) Food() *FoodService {
	return &FoodService{svc: c.foodSvc}
}

// Tastes returns the taste taxonomy service.
func (c *Client) Tastes() *TasteService {
	return &TasteService{svc: c.tasteSvc}
}

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

// geocoderAdapter wraps the public Geocoder to satisfy internal domain.Geocoder.
type geocoderAdapter struct {
	inner Geocoder
}

func (a *geocoderAdapter) Geocode(ctx context.Context, address string) (domain.Geolocation, error) {
	l, err := a.inner.Geocode(ctx, address)
	if err != nil {
		return domain.Geolocation{}, fmt.Errorf("geocode: %w", err)
	}
	return domain.Geolocation{Latitude: l.Latitude, Longitude: l.Longitude}, nil
}

// anomalyCounter returns an unregistered counter. Embedded use has no
// metrics endpoint, so anomalies surface through logs only.
func anomalyCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "foodscout",
		Name:      "relation_anomalies_total",
		Help:      "Food items attached to more than one restaurant",
	})
}
