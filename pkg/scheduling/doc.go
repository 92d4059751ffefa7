/*
Package scheduling provides the task execution layers of taskring.

  - workerpool: fixed worker pool draining a bounded ring buffer
  - scheduler: timestamp-driven admission of tasks into a worker pool

Worker Pool:

	pool := workerpool.New(4, 100) // 4 workers, buffer capacity 100
	if err := pool.Run(); err != nil {
		log.Fatal(err)
	}
	defer pool.Shutdown()

	pool.AddTask(workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	}))

Task Scheduler:

	s := scheduler.New(10, 4)
	if err := s.Run(); err != nil {
		log.Fatal(err)
	}

	// One-time task at an absolute timestamp
	s.Add(task, time.Now().Add(5*time.Second))

	// Relative delay
	s.AddAfter(task, time.Minute)

	// Recurring cron entry (seconds field first)
	s.AddCron("0 0 9 * * MON-FRI", task)

	s.Shutdown() // drains every one-shot task before returning

Both components share the same backpressure model: submission blocks while
the bounded buffer is full, so overload throttles producers instead of
growing queues.
*/
package scheduling
