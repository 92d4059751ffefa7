/*
Package scheduler provides timestamp-driven task scheduling on top of the
taskring worker pool.

A scheduler owns three things: an intake ring buffer that submissions are
pushed into, a single admission-loop goroutine, and a worker pool. The loop
goroutine is the intake buffer's only consumer, so it drains submissions with
the buffer's lock-free unsynchronized pop, holds not-yet-due entries in an
insertion-ordered pending list that no other goroutine ever touches, and
hands each entry to the pool once its timestamp has arrived.

Basic usage:

	s := scheduler.New(10, 4) // intake capacity 10, 4 workers

	if err := s.Run(); err != nil {
		log.Fatal(err)
	}

	s.Add(workerpool.TaskFunc(func(ctx context.Context) error {
		fmt.Println("task executed")
		return nil
	}), time.Now().Add(5*time.Second))

	s.Shutdown()

Ordering:

A task is never dispatched before its timestamp; that is the only ordering
guarantee. Freshly drained entries are inserted at the front of the pending
list, so tasks submitted later can be evaluated before older ones within the
same scan, and actual execution order is decided by whichever idle worker
wins the pool's consumer lock.

Shutdown semantics:

Shutdown drains to completion: it blocks until every previously submitted
one-shot task, however far in the future its timestamp lies, has become due
and been dispatched. It does not cancel pending work. Recurring cron entries
are the one exception — they would hold the drain open forever, so Shutdown
drops them. A scheduler can be shut down and run again any number of times.

Admission latency is bounded by Config.TickInterval (default 50ms): the loop
sleeps one tick when it has nothing to drain or admit rather than spinning.
*/
package scheduler
