package foodscout

import (
	"time"

	"go.uber.org/zap"
)

// clientConfig collects the options applied by New.
type clientConfig struct {
	driver         string
	addrs          []string
	password       string
	keyPrefix      string
	defaultRadius  float64
	geocoder       Geocoder
	geocodeTimeout time.Duration
	logger         *zap.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithValkey connects to a Valkey instance.
func WithValkey(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedis connects to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix overrides the key namespace all records live under.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithDefaultRadius sets the radius in miles used by food searches that
// pass coordinates without an explicit radius.
func WithDefaultRadius(miles float64) Option {
	return func(c *clientConfig) {
		c.defaultRadius = miles
	}
}

// WithGeocoder enables background geocoding of saved restaurant
// addresses. Without it coordinates stay unset and proximity search
// sees no locations.
func WithGeocoder(g Geocoder) Option {
	return func(c *clientConfig) {
		c.geocoder = g
	}
}

// WithGeocodeTimeout bounds each background geocoding call.
func WithGeocodeTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.geocodeTimeout = d
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
