// Package geocode resolves postal addresses to coordinates through a
// Maps-style geocoding HTTP API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
	"github.com/battlebranding/food-scout/internal/metrics"
)

const geocodePath = "/maps/api/geocode/json"

// Client is a geocoding provider speaking the Maps geocoding JSON API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// Config holds the geocoding provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a geocoding client. Every request is bounded by the
// configured timeout on top of the caller's context.
func NewClient(cfg *Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		logger:     cfg.Logger,
	}
}

// geocodeResponse is the wire format of the geocoding API.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode implements domain.Geocoder with transport-level metrics.
// Provider failures wrap domain.ErrUpstreamFailure; an address the
// provider cannot resolve wraps domain.ErrNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Geolocation, error) {
	reqURL := c.baseURL + geocodePath + "?" + url.Values{
		"address": {address},
		"key":     {c.apiKey},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return domain.Geolocation{}, fmt.Errorf("build geocode request: %w", err)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return domain.Geolocation{}, fmt.Errorf("geocode request failed: %w: %w", domain.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return domain.Geolocation{}, fmt.Errorf("geocode API status %d: %w", resp.StatusCode, domain.ErrUpstreamFailure)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return domain.Geolocation{}, fmt.Errorf("decode geocode response: %w: %w", domain.ErrUpstreamFailure, err)
	}

	switch {
	case parsed.Status == "ZERO_RESULTS" || len(parsed.Results) == 0:
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return domain.Geolocation{}, fmt.Errorf("no geocode results: %w", domain.ErrNotFound)
	case parsed.Status != "OK":
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return domain.Geolocation{}, fmt.Errorf("geocode API error %s: %w", parsed.Status, domain.ErrUpstreamFailure)
	}

	metrics.GeocodeRequestsTotal.WithLabelValues("success").Inc()
	metrics.GeocodeRequestDuration.Observe(duration.Seconds())

	loc := parsed.Results[0].Geometry.Location
	return domain.Geolocation{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// HealthCheck verifies the provider endpoint is reachable. Any HTTP
// response counts as reachable; only transport failures are reported.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+geocodePath, http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode endpoint unreachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}
