// Package metrics provides Prometheus instrumentation for taskring components.
//
// The metrics package provides automatic instrumentation for:
//   - Worker pools (submitted, executed, completed, failed tasks, panics,
//     execution duration, pool size, buffered tasks)
//   - The scheduler (accepted tasks, admitted tasks, cron registrations,
//     pending-list depth, intake-buffer depth)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Worker pool with metrics
//	pool := workerpool.NewWithMetrics(4, 100, "task_pool")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	pool := workerpool.NewWithConfigAndMetrics(
//		workerpool.Config{Workers: 4, BufferSize: 100},
//		"task_pool",
//		config,
//	)
//
// # Available Metrics
//
// Worker pool:
//
//   - taskring_workerpool_tasks_submitted_total
//   - taskring_workerpool_tasks_executed_total
//   - taskring_workerpool_tasks_completed_total
//   - taskring_workerpool_tasks_failed_total
//   - taskring_workerpool_task_panics_total
//   - taskring_workerpool_task_duration_seconds
//   - taskring_workerpool_size
//   - taskring_workerpool_queued_tasks
//
// Scheduler:
//
//   - taskring_scheduler_tasks_scheduled_total
//   - taskring_scheduler_tasks_admitted_total
//   - taskring_scheduler_cron_tasks_scheduled_total
//   - taskring_scheduler_pending_tasks
//   - taskring_scheduler_intake_depth
package metrics
