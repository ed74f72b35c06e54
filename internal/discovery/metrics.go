package discovery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveryRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_requests_total",
			Help: "Total number of discovery requests",
		},
	)

	discoveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_request_duration_seconds",
			Help:    "End-to-end discovery pipeline duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_match_scores",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	showcaseActivationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_showcase_activations_total",
			Help: "Times the showcase fallback pool was activated",
		},
	)

	showcaseProfilesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_showcase_profiles_served_total",
			Help: "Showcase profiles merged into discovery results",
		},
	)

	geocodeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_geocode_lookups_total",
			Help: "Postcode geocoding lookups by outcome",
		},
		[]string{"outcome"},
	)

	scoreCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_score_cache_lookups_total",
			Help: "Score cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordDiscoveryRequest() {
	discoveryRequestsTotal.Inc()
}

func ObserveDiscoveryDuration(d time.Duration) {
	discoveryDuration.Observe(d.Seconds())
}

func ObserveMatchScore(score int) {
	matchScores.Observe(float64(score))
}

func RecordShowcaseActivation(count int) {
	showcaseActivationsTotal.Inc()
	showcaseProfilesServed.Add(float64(count))
}

func RecordGeocodeLookup(outcome string) {
	geocodeLookupsTotal.WithLabelValues(outcome).Inc()
}

func RecordScoreCacheLookup(hit bool) {
	if hit {
		scoreCacheLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		scoreCacheLookupsTotal.WithLabelValues("miss").Inc()
	}
}
