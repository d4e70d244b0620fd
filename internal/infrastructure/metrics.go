package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline and dashboard counters. Registered on the default registry and
// exposed through MetricsHandler.
var (
	RowsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agricli_rows_cleaned_total",
		Help: "Number of rows that passed through the cleaning pipeline.",
	})

	HeaderCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agricli_header_collisions_total",
		Help: "Number of raw headers that normalized to an already-taken canonical key.",
	})

	SyntheticColumns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agricli_synthetic_columns_total",
		Help: "Number of zero-filled columns created because no match was found.",
	})

	QueriesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agricli_queries_executed_total",
		Help: "Number of canned query executions by query id.",
	}, []string{"query"})
)

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
