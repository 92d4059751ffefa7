package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/taskring/pkg/ring"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result describes a finished task execution. The pool has no result
// channel; results are observed through the OnTaskComplete hook and metrics.
type Result struct {
	// Task is the original task that was executed
	Task Task

	// Error is any error that occurred during task execution,
	// including a recovered panic
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool executes submitted tasks on a fixed set of worker goroutines fed from
// a bounded ring buffer.
type Pool interface {
	// AddTask submits a task for execution. The push into the task buffer
	// blocks while the buffer is full, so a saturated pool backpressures the
	// submitter instead of dropping work. AddTask has a single logical
	// submitter contract inherited from the buffer's producer side.
	AddTask(task Task) error

	// Run starts the worker goroutines. Returns an error if the pool is
	// already running. A pool may be run again after Shutdown.
	Run() error

	// Shutdown stops the workers and waits for them to drain the buffered
	// tasks and exit. Idempotent; safe to call multiple times.
	Shutdown()

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns a racy snapshot of the number of buffered tasks.
	QueueSize() int

	// TotalSubmitted returns the total number of tasks submitted to the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks completed by the pool.
	TotalCompleted() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// Workers is the number of worker goroutines. Must be greater than 0.
	Workers int

	// BufferSize is the capacity of the task ring buffer. Must be greater
	// than 0; the buffer never grows.
	BufferSize int

	// PollInterval bounds how long a worker waits to acquire the buffer's
	// consumer lock per poll. Defaults to 500ms.
	PollInterval time.Duration

	// IdleInterval is how long a worker backs off after polling an empty
	// buffer. Defaults to 10ms. An empty poll returns immediately, so this
	// is what keeps idle workers from spinning.
	IdleInterval time.Duration

	// PanicHandler is called when a task panics during execution.
	// The panic is always recovered; a failing task never takes down its
	// worker. If nil, the panic is only reported through the Result error.
	PanicHandler func(task Task, recovered interface{})

	// OnTaskComplete is called after a task completes (success or failure).
	OnTaskComplete func(workerID int, result Result)
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	tasks *ring.Buffer[Task]

	// stop is scoped to this pool instance: set by Shutdown, cleared by Run.
	stop atomic.Bool

	mu      sync.Mutex
	running bool

	workerWg sync.WaitGroup

	totalSubmitted atomic.Int64
	totalCompleted atomic.Int64
}

// New creates a worker pool with the specified number of workers and task
// buffer capacity. Workers are not started until Run is called.
func New(workers, bufferSize int) Pool {
	return NewWithConfig(Config{
		Workers:    workers,
		BufferSize: bufferSize,
	})
}

// NewWithConfig creates a worker pool with the specified configuration.
// Panics on a non-positive worker count or buffer size.
func NewWithConfig(config Config) Pool {
	if config.Workers <= 0 {
		panic("workerpool: worker count must be positive")
	}
	if config.BufferSize <= 0 {
		panic("workerpool: buffer size must be positive")
	}

	if config.PollInterval <= 0 {
		config.PollInterval = 500 * time.Millisecond
	}
	if config.IdleInterval <= 0 {
		config.IdleInterval = 10 * time.Millisecond
	}

	return &workerPool{
		config: config,
		tasks:  ring.New[Task](config.BufferSize),
	}
}
