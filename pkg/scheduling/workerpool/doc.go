/*
Package workerpool provides a fixed-size worker pool fed from a bounded ring
buffer.

A pool owns a ring.Buffer[Task] and a fixed set of worker goroutines. Each
worker polls the buffer with a 500ms-bounded TryPopFor and executes whatever
it receives on its own goroutine. A full buffer blocks AddTask, so pool
saturation backpressures the submitter instead of growing a queue or dropping
work.

Basic usage:

	pool := workerpool.New(4, 100) // 4 workers, buffer capacity 100

	if err := pool.Run(); err != nil {
		log.Fatal(err)
	}
	defer pool.Shutdown()

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	})

	if err := pool.AddTask(task); err != nil {
		log.Printf("rejected: %v", err)
	}

Lifecycle:

Run starts the workers; Shutdown stops them and blocks until every buffered
task has been drained and executed. Shutdown is idempotent, and the same pool
can be run again afterwards. AddTask keeps its single-logical-submitter
contract from the underlying buffer's producer side.

Failure isolation:

Tasks have no result channel. A task that returns an error is reported
through the OnTaskComplete hook (and metrics, when enabled); a task that
panics is recovered, optionally routed to Config.PanicHandler, and never
takes down its worker.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics wrap the pool with Prometheus
instrumentation; see the metrics package for the exposed series.

	pool := workerpool.NewWithMetrics(4, 100, "task_pool")
*/
package workerpool
