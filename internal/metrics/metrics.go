package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// promauto registers everything with the default registry, which is what
// the /metrics handler serves.

var (
	GamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sixdegrees_games_created_total",
		Help: "Total number of game sessions created",
	})

	GamesFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sixdegrees_games_finished_total",
		Help: "Total number of game sessions finished",
	})

	// SeedRejections counts seeds that could not support a full question
	// and were denylisted during generation. A climbing rate means the
	// graph data is getting too sparse for the configured difficulty.
	SeedRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sixdegrees_seed_rejections_total",
		Help: "Total number of candidate seeds rejected during question generation",
	})

	FinalScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sixdegrees_final_score",
		Help:    "Distribution of final scores per finished game",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sixdegrees_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sixdegrees_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	GraphRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sixdegrees_graph_requests_total",
			Help: "Total number of graph-service requests",
		},
		[]string{"endpoint", "outcome"},
	)
)
