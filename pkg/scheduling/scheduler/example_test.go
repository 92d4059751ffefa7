package scheduler_test

import (
	"context"
	"fmt"
	"time"

	"github.com/vnykmshr/taskring/pkg/scheduling/scheduler"
	"github.com/vnykmshr/taskring/pkg/scheduling/workerpool"
)

func ExampleNew() {
	s := scheduler.New(10, 4)

	// A timestamp in the past is admitted on the first scan.
	_ = s.Add(workerpool.TaskFunc(func(ctx context.Context) error {
		fmt.Println("task executed")
		return nil
	}), time.Now().Add(-time.Second))

	if err := s.Run(); err != nil {
		fmt.Println(err)
		return
	}

	// Shutdown blocks until the task has been dispatched and executed.
	s.Shutdown()

	// Output:
	// task executed
}
