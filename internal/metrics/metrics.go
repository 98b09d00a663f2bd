// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "advsearch",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advsearch",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "advsearch",
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served",
		},
	)

	// HookInvocationsTotal counts search-results hook calls by outcome.
	HookInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advsearch",
			Name:      "hook_invocations_total",
			Help:      "Search-results hook invocations by outcome",
		},
		[]string{"outcome"}, // "active" / "opted_out" / "error"
	)

	// ExplicitURLTotal counts assembled bundles by whether the scope was rewritten.
	ExplicitURLTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advsearch",
			Name:      "explicit_url_total",
			Help:      "Assembled bundles by explicit namespace URL result",
		},
		[]string{"result"}, // "rewritten" / "already_scoped"
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		httpRequestDuration,
		httpRequestsTotal,
		httpInFlight,
		HookInvocationsTotal,
		ExplicitURLTotal,
	}
}

// Register registers all collectors with reg (prometheus.DefaultRegisterer when nil).
// Registering twice with the same registerer is not an error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}
