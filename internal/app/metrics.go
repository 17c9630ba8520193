package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/stackit/internal/domain"
)

const (
	outcomeOK              = "ok"
	outcomeInvalid         = "invalid"
	outcomeNotFound        = "not_found"
	outcomeUnauthenticated = "unauthenticated"
	outcomeError           = "error"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stackit",
		Subsystem: "board",
		Name:      "operations_total",
		Help:      "Board operations by name and outcome.",
	}, []string{"operation", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stackit",
		Subsystem: "board",
		Name:      "operation_duration_seconds",
		Help:      "Board operation latency including the store flush.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	persistFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stackit",
		Subsystem: "board",
		Name:      "persist_failures_total",
		Help:      "Store flushes that failed after a successful board operation.",
	}, []string{"operation"})

	questionsHeld = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stackit",
		Subsystem: "board",
		Name:      "questions",
		Help:      "Number of questions held in memory.",
	})
)

func outcomeFor(err error) string {
	switch {
	case domain.IsValidation(err):
		return outcomeInvalid
	case domain.IsNotFound(err):
		return outcomeNotFound
	case domain.IsUnauthenticated(err):
		return outcomeUnauthenticated
	default:
		return outcomeError
	}
}
