package workerpool

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/taskring/pkg/metrics"
)

// MetricsPool wraps a worker Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a new worker pool with metrics enabled.
func NewWithMetrics(workers, bufferSize int, name string) Pool {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{
		Workers:    workers,
		BufferSize: bufferSize,
	}, name, config)
}

// NewWithConfigAndMetrics creates a new worker pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) Pool {
	if !metricsConfig.Enabled {
		return NewWithConfig(config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	// Chain the panic handler so recovered panics are counted even though
	// the recovery itself happens inside the base pool.
	userPanicHandler := config.PanicHandler
	config.PanicHandler = func(task Task, recovered interface{}) {
		registry.TaskPanics.WithLabelValues(name).Inc()
		if userPanicHandler != nil {
			userPanicHandler(task, recovered)
		}
	}

	mp := &MetricsPool{
		pool:     NewWithConfig(config),
		name:     name,
		registry: registry,
		enabled:  true,
	}

	mp.updateMetrics()
	return mp
}

// updateMetrics updates the current state gauges.
func (mp *MetricsPool) updateMetrics() {
	if !mp.enabled {
		return
	}

	mp.registry.WorkerPoolSize.WithLabelValues(mp.name).Set(float64(mp.pool.Size()))
	mp.registry.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(mp.pool.QueueSize()))
}

// AddTask submits a task for execution, recording submission and execution metrics.
func (mp *MetricsPool) AddTask(task Task) error {
	if !mp.enabled {
		return mp.pool.AddTask(task)
	}

	wrapped := &metricsTask{
		original:   task,
		pool:       mp,
		submitTime: time.Now(),
	}

	err := mp.pool.AddTask(wrapped)
	if err == nil {
		mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
	}
	mp.updateMetrics()
	return err
}

// metricsTask wraps a Task to collect execution metrics.
type metricsTask struct {
	original   Task
	pool       *MetricsPool
	submitTime time.Time
}

// Execute runs the original task and records metrics.
func (mt *metricsTask) Execute(ctx context.Context) error {
	start := time.Now()

	err := mt.original.Execute(ctx)

	if mt.pool.enabled {
		mt.pool.registry.TaskExecutionDuration.WithLabelValues(mt.pool.name).Observe(time.Since(start).Seconds())
		mt.pool.registry.TasksExecuted.WithLabelValues(mt.pool.name).Inc()

		if err != nil {
			mt.pool.registry.TasksFailed.WithLabelValues(mt.pool.name).Inc()
		} else {
			mt.pool.registry.TasksCompleted.WithLabelValues(mt.pool.name).Inc()
		}

		mt.pool.updateMetrics()
	}

	return err
}

// Run starts the worker goroutines.
func (mp *MetricsPool) Run() error {
	err := mp.pool.Run()
	mp.updateMetrics()
	return err
}

// Shutdown stops the workers and waits for them to drain and exit.
func (mp *MetricsPool) Shutdown() {
	mp.pool.Shutdown()
	mp.updateMetrics()
}

// Size returns the number of workers in the pool.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// QueueSize returns the current number of buffered tasks.
func (mp *MetricsPool) QueueSize() int {
	queueSize := mp.pool.QueueSize()

	if mp.enabled {
		mp.registry.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(queueSize))
	}

	return queueSize
}

// TotalSubmitted returns the total number of tasks submitted.
func (mp *MetricsPool) TotalSubmitted() int64 {
	return mp.pool.TotalSubmitted()
}

// TotalCompleted returns the total number of tasks completed.
func (mp *MetricsPool) TotalCompleted() int64 {
	return mp.pool.TotalCompleted()
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	mp.enabled = config.Enabled

	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}

	if mp.enabled {
		mp.updateMetrics()
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}
