package toolserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lookout",
			Subsystem: "tools",
			Name:      "requests_total",
			Help:      "Total tool server requests by tool and status",
		},
		[]string{"tool", "status"},
	)

	toolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lookout",
			Subsystem: "tools",
			Name:      "duration_seconds",
			Help:      "Duration of tool server operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	toolResultsCount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lookout",
			Subsystem: "tools",
			Name:      "results_count",
			Help:      "Number of results returned per search tool call",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"tool"},
	)
)
