package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	trerrors "github.com/vnykmshr/taskring/pkg/common/errors"
	"github.com/vnykmshr/taskring/pkg/common/validation"
)

// AddTask submits a task for execution. Blocks while the task buffer is
// full; see Pool.AddTask.
func (p *workerPool) AddTask(task Task) error {
	if err := validation.ValidateNotNil("workerpool", "task", task); err != nil {
		return err
	}

	p.tasks.Push(task)
	p.totalSubmitted.Add(1)
	return nil
}

// Run starts the worker goroutines. Each worker polls the task buffer with a
// bounded TryPopFor and keeps draining until the pool is stopped and the
// buffer is observably empty.
func (p *workerPool) Run() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("workerpool: %w", trerrors.ErrAlreadyRunning)
	}

	p.stop.Store(false)
	p.running = true

	for i := 0; i < p.config.Workers; i++ {
		p.workerWg.Add(1)
		go p.worker(i)
	}
	return nil
}

// Shutdown signals the workers to stop and waits for them to finish.
// Buffered tasks are drained before the workers exit. Idempotent, and the
// pool can be run again afterwards.
func (p *workerPool) Shutdown() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.stop.Store(true)
	p.workerWg.Wait()

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.Workers
}

// QueueSize returns a racy snapshot of the number of buffered tasks.
func (p *workerPool) QueueSize() int {
	return p.tasks.Len()
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *workerPool) TotalSubmitted() int64 {
	return p.totalSubmitted.Load()
}

// TotalCompleted returns the total number of tasks completed by the pool.
func (p *workerPool) TotalCompleted() int64 {
	return p.totalCompleted.Load()
}

// worker is the main loop for a single worker goroutine. The loop condition
// keeps a stopping worker draining until the buffer is observably empty, so
// accepted tasks are not stranded by Shutdown.
func (p *workerPool) worker(id int) {
	defer p.workerWg.Done()

	for !p.stop.Load() || !p.tasks.Empty() {
		task, ok := p.tasks.TryPopFor(p.config.PollInterval)
		if !ok {
			if p.tasks.Empty() {
				time.Sleep(p.config.IdleInterval)
			}
			continue
		}
		p.executeTask(id, task)
	}
}

// executeTask runs a single task, isolating panics so one failing task
// cannot take down its worker.
func (p *workerPool) executeTask(workerID int, task Task) {
	start := time.Now()
	var err error

	defer func() {
		if r := recover(); r != nil {
			if p.config.PanicHandler != nil {
				p.config.PanicHandler(task, r)
			}
			err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}

		p.totalCompleted.Add(1)

		if p.config.OnTaskComplete != nil {
			p.config.OnTaskComplete(workerID, Result{
				Task:     task,
				Error:    err,
				Duration: time.Since(start),
				WorkerID: workerID,
			})
		}
	}()

	err = task.Execute(context.Background())
}
