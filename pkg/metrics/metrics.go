// Package metrics provides Prometheus instrumentation for taskring components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for taskring components.
type Registry struct {
	// Worker Pool Metrics
	TasksSubmitted        *prometheus.CounterVec
	TasksExecuted         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TaskPanics            *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	WorkerPoolSize        *prometheus.GaugeVec
	WorkerPoolQueued      *prometheus.GaugeVec

	// Scheduler Metrics
	TasksScheduled *prometheus.CounterVec
	TasksAdmitted  *prometheus.CounterVec
	CronScheduled  *prometheus.CounterVec
	PendingTasks   *prometheus.GaugeVec
	IntakeDepth    *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by taskring components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Worker Pool Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that returned an error",
			},
			[]string{"pool_name"},
		),

		TaskPanics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "task_panics_total",
				Help:      "Total number of recovered task panics",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskring",
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of tasks buffered and waiting for a worker",
			},
			[]string{"pool_name"},
		),

		// Scheduler Metrics
		TasksScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "scheduler",
				Name:      "tasks_scheduled_total",
				Help:      "Total number of tasks accepted by the scheduler",
			},
			[]string{"scheduler_name"},
		),

		TasksAdmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "scheduler",
				Name:      "tasks_admitted_total",
				Help:      "Total number of due tasks handed to the worker pool",
			},
			[]string{"scheduler_name"},
		),

		CronScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskring",
				Subsystem: "scheduler",
				Name:      "cron_tasks_scheduled_total",
				Help:      "Total number of recurring cron entries registered",
			},
			[]string{"scheduler_name"},
		),

		PendingTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskring",
				Subsystem: "scheduler",
				Name:      "pending_tasks",
				Help:      "Number of not-yet-due tasks held in the pending list",
			},
			[]string{"scheduler_name"},
		),

		IntakeDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskring",
				Subsystem: "scheduler",
				Name:      "intake_depth",
				Help:      "Number of submitted tasks waiting in the intake buffer",
			},
			[]string{"scheduler_name"},
		),
	}
}
