package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Store operation outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

var (
	StoreOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "usergrid",
		Name:      "store_operations_total",
		Help:      "Store operations by operation and outcome.",
	}, []string{"op", "outcome"})

	StoreLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "usergrid",
		Name:      "store_operation_duration_seconds",
		Help:      "Store operation latency.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"op"})
)

// Register registers the store collectors on reg, or the default registerer if nil.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	for _, c := range []prometheus.Collector{StoreOps, StoreLatency} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}

	return nil
}

// Observe records one store operation.
func Observe(op, outcome string, started time.Time) {
	StoreOps.WithLabelValues(op, outcome).Inc()
	StoreLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
}
