package interactions

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_swipes_total",
			Help: "Total swipes by direction and persistence",
		},
		[]string{"direction", "persisted"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interactions_matches_total",
			Help: "Total number of matches created",
		},
	)

	blocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interactions_blocks_total",
			Help: "Total number of blocks created",
		},
	)
)

func RecordSwipe(direction string, persisted bool) {
	swipesTotal.WithLabelValues(direction, strconv.FormatBool(persisted)).Inc()
}

func RecordMatch() {
	matchesTotal.Inc()
}

func RecordBlock() {
	blocksTotal.Inc()
}
