package metrics

import "github.com/prometheus/client_golang/prometheus"

// Geocoding Prometheus metrics.
var (
	GeocodeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodscout",
			Name:      "geocode_requests_total",
			Help:      "Total number of geocoding requests",
		},
		[]string{"status"}, // "success" / "error"
	)

	GeocodeRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "foodscout",
			Name:      "geocode_request_duration_seconds",
			Help:      "Geocoding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	GeocodeCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodscout",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// RegisterGeocodeMetrics registers geocoding metrics with the default registry.
// Called once from the composition root (no init()).
func RegisterGeocodeMetrics() {
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeRequestDuration)
	prometheus.MustRegister(GeocodeCacheTotal)
}
