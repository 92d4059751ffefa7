/*
Package taskring provides a small concurrency runtime built around a bounded
single-producer ring buffer: the buffer itself, a fixed-size worker pool fed
from it, and a timestamp-driven task scheduler on top of the pool.

Ring Buffer (pkg/ring):
  - Buffer[T]: fixed capacity, atomic read/write counters, blocking push
    with backpressure, lock-free single-consumer pop, and lock-serialized
    multi-consumer pops with bounded lock acquisition

Task Scheduling (pkg/scheduling):
  - workerpool: N workers polling the buffer, per-task panic isolation
  - scheduler: intake buffer, pending list, time-gated admission,
    drain-to-completion shutdown, cron support

Example usage:

	import (
		"github.com/vnykmshr/taskring/pkg/scheduling/scheduler"
		"github.com/vnykmshr/taskring/pkg/scheduling/workerpool"
	)

	s := scheduler.New(10, 4) // intake capacity 10, 4 workers
	s.Run()

	s.Add(workerpool.TaskFunc(func(ctx context.Context) error {
		fmt.Println("task executed")
		return nil
	}), time.Now().Add(5*time.Second))

	s.Shutdown()
*/
package taskring
