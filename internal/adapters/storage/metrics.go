package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stackit",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Key-value backend calls by backend, operation and result.",
	}, []string{"backend", "operation", "result"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stackit",
		Subsystem: "storage",
		Name:      "operation_duration_seconds",
		Help:      "Latency of key-value backend calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend", "operation"})

	circuitState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "stackit",
		Subsystem: "storage",
		Name:      "circuit_state",
		Help:      "Circuit breaker state per backend: 0 closed, 1 open, 2 half-open.",
	}, []string{"backend"})
)
