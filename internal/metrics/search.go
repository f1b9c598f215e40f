package metrics

import "github.com/prometheus/client_golang/prometheus"

// Proximity search Prometheus metrics.
var (
	GeoSearchLocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodscout",
			Name:      "geo_search_locations_total",
			Help:      "Stored locations seen by radius searches, by pipeline stage",
		},
		[]string{"stage"}, // "scanned" / "prefilter" / "matched"
	)

	GeoSearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "foodscout",
			Name:      "geo_search_duration_seconds",
			Help:      "Radius search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RelationAnomaliesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "foodscout",
			Name:      "relation_anomalies_total",
			Help:      "Food items found linked to more than one restaurant",
		},
	)
)

// RegisterSearchMetrics registers search metrics with the default registry.
// Called once from the composition root (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(GeoSearchLocationsTotal)
	prometheus.MustRegister(GeoSearchDuration)
	prometheus.MustRegister(RelationAnomaliesTotal)
}
