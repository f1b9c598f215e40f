// Package geocache caches geocoding results in a key-value store so a
// restaurant address is resolved upstream at most once per TTL window.
package geocache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/db"
	"github.com/battlebranding/food-scout/internal/domain"
)

// store is the consumer interface for the geocode cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedGeocoder caches resolved coordinates in a key-value store.
type CachedGeocoder struct {
	inner      domain.Geocoder
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Geocoder,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedGeocoder {
	return &CachedGeocoder{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// cachedPoint is the stored JSON payload.
type cachedPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Geocode returns cached coordinates or calls the inner geocoder.
// Only successful resolutions are cached; failures pass through.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Geolocation, error) {
	key := c.cacheKey(address)

	if g, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return g, nil
	}

	c.incCache("miss")

	g, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return domain.Geolocation{}, fmt.Errorf("geocode address: %w", err)
	}

	c.putToCache(ctx, key, g)
	return g, nil
}

func (c *CachedGeocoder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the normalized address: case and whitespace variants
// of the same address share one entry.
func (c *CachedGeocoder) cacheKey(address string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(address), " "))
	h := sha256.Sum256([]byte(normalized))
	return domain.KeyPrefix + "geocode:" + hex.EncodeToString(h[:])
}

func (c *CachedGeocoder) getFromCache(ctx context.Context, key string) (domain.Geolocation, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached geocode", zap.String("key", key), zap.Error(err))
		}
		return domain.Geolocation{}, false
	}
	if len(data) == 0 {
		return domain.Geolocation{}, false
	}

	var p cachedPoint
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn("Failed to parse cached geocode", zap.String("key", key), zap.Error(err))
		return domain.Geolocation{}, false
	}

	return domain.Geolocation{Latitude: p.Latitude, Longitude: p.Longitude}, true
}

func (c *CachedGeocoder) putToCache(ctx context.Context, key string, g domain.Geolocation) {
	data, err := json.Marshal(cachedPoint{Latitude: g.Latitude, Longitude: g.Longitude})
	if err != nil {
		c.logger.Warn("Failed to encode geocode for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache geocode", zap.String("key", key), zap.Error(err))
	}
}
