package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/taskring/pkg/metrics"
)

// NewWithMetrics creates a scheduler with metrics enabled on its own
// Prometheus registry.
func NewWithMetrics(bufferSize, workers int, name string) Scheduler {
	registry := prometheus.NewRegistry()
	return NewWithConfigAndMetrics(Config{
		BufferSize: bufferSize,
		Workers:    workers,
	}, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewWithConfigAndMetrics creates a scheduler with custom config and metrics.
// The scheduler records accepted, admitted, and cron-registered task
// counters, and pending-list and intake-depth gauges, under the given name.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) Scheduler {
	s := NewWithConfig(cfg).(*scheduler)

	if !metricsConfig.Enabled {
		return s
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	s.registry = registry
	s.name = name
	return s
}
