package classifier

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sgostarter/libgrowth/catalog"
)

var (
	// sweepCoefficients counts coefficient values sampled per family
	sweepCoefficients = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "growth_sweep_coefficients_total",
		Help: "Total coefficient values sampled by family",
	}, []string{"family"})

	// sweepEarlyStops counts early terminations by level (sample, coefficient)
	sweepEarlyStops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "growth_sweep_early_stops_total",
		Help: "Total early stops by search level",
	}, []string{"level"})

	sweepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "growth_sweep_duration_seconds",
		Help:    "Coefficient sweep duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"family"})

	familyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "growth_family_failures_total",
		Help: "Total failed family sweeps by error type",
	}, []string{"family", "error_type"})
)

func errorType(err error) string {
	switch {
	case errors.Is(err, catalog.ErrUnboundVariable):
		return "unbound_variable"
	case errors.Is(err, catalog.ErrBadBinding):
		return "bad_binding"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "other"
	}
}
