package scheduler

import (
	"container/list"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	trerrors "github.com/vnykmshr/taskring/pkg/common/errors"
	"github.com/vnykmshr/taskring/pkg/common/validation"
	"github.com/vnykmshr/taskring/pkg/metrics"
	"github.com/vnykmshr/taskring/pkg/ring"
	"github.com/vnykmshr/taskring/pkg/scheduling/workerpool"
)

// Clock abstracts wall-clock time so scheduling can be tested without real
// delays.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Scheduler accepts tasks tagged with an execution time and hands them to a
// worker pool once that time has arrived.
type Scheduler interface {
	// Add schedules task to run at or after runAt. The push into the intake
	// buffer blocks while the buffer is full. Add assumes a single logical
	// submitter, matching the intake buffer's single-producer contract.
	Add(task workerpool.Task, runAt time.Time) error

	// AddAfter schedules task to run after the given delay.
	AddAfter(task workerpool.Task, delay time.Duration) error

	// AddCron schedules task to run repeatedly on a cron expression
	// (with a seconds field). Recurring entries are dropped by Shutdown.
	AddCron(expr string, task workerpool.Task) error

	// Run starts the admission loop and the worker pool. Returns an error
	// if the scheduler is already running.
	Run() error

	// Shutdown requests a stop and blocks until every previously submitted
	// one-shot task, however far in the future, has become due and been
	// dispatched, then shuts the worker pool down. Drain-to-completion, not
	// cancel-on-shutdown: callers wanting prompt termination must not
	// schedule far-future tasks. The scheduler can be run again afterwards.
	Shutdown()

	// Pending returns a racy snapshot of the number of not-yet-due tasks.
	Pending() int
}

// Config holds scheduler configuration.
type Config struct {
	// BufferSize is the capacity of the intake ring buffer (and of the
	// owned pool's task buffer). Must be positive.
	BufferSize int

	// Workers is the owned worker pool's size. Ignored when Pool is set.
	Workers int

	// Pool is an optional externally owned worker pool. When set, the
	// scheduler does not shut it down.
	Pool workerpool.Pool

	// TickInterval bounds admission latency: how long the loop sleeps when
	// an iteration neither drained intake nor admitted a task.
	// Defaults to 50ms.
	TickInterval time.Duration

	// Location is the time zone used for cron schedules. Defaults to
	// time.Local.
	Location *time.Location

	// Clock overrides the wall-clock source. Defaults to the system clock.
	Clock Clock
}

// entry is one scheduled task. A non-nil schedule marks a recurring entry.
type entry struct {
	runAt    time.Time
	task     workerpool.Task
	schedule cron.Schedule
}

type scheduler struct {
	cfg Config

	intake *ring.Buffer[entry]

	// pending is owned exclusively by the loop goroutine; nothing else may
	// touch it. pendingCount mirrors its length for observers.
	pending      *list.List
	pendingCount atomic.Int64

	pool    workerpool.Pool
	ownPool bool

	clock      Clock
	location   *time.Location
	cronParser cron.Parser

	stop atomic.Bool

	mu       sync.Mutex
	running  bool
	loopDone chan struct{}

	// nil registry means metrics are disabled.
	registry *metrics.Registry
	name     string
}

// New creates a scheduler with an owned worker pool of the given size, using
// bufferSize for both the intake buffer and the pool's task buffer.
// Panics on non-positive arguments, like the underlying constructors.
func New(bufferSize, workers int) Scheduler {
	return NewWithConfig(Config{
		BufferSize: bufferSize,
		Workers:    workers,
	})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) Scheduler {
	if cfg.BufferSize <= 0 {
		panic("scheduler: buffer size must be positive")
	}

	pool := cfg.Pool
	ownPool := false
	if pool == nil {
		pool = workerpool.New(cfg.Workers, cfg.BufferSize)
		ownPool = true
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	return &scheduler{
		cfg:        cfg,
		intake:     ring.New[entry](cfg.BufferSize),
		pending:    list.New(),
		pool:       pool,
		ownPool:    ownPool,
		clock:      clock,
		location:   location,
		cronParser: cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

func (s *scheduler) Add(task workerpool.Task, runAt time.Time) error {
	if err := validation.ValidateNotNil("scheduler", "task", task); err != nil {
		return err
	}
	if runAt.IsZero() {
		return trerrors.NewValidationError("scheduler", "runAt", runAt, "cannot be zero").
			WithHint("use a concrete execution time, e.g. time.Now()")
	}

	s.intake.Push(entry{runAt: runAt, task: task})

	if s.registry != nil {
		s.registry.TasksScheduled.WithLabelValues(s.name).Inc()
	}
	return nil
}

func (s *scheduler) AddAfter(task workerpool.Task, delay time.Duration) error {
	return s.Add(task, s.clock.Now().Add(delay))
}

func (s *scheduler) Run() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler: %w", trerrors.ErrAlreadyRunning)
	}

	s.stop.Store(false)
	s.loopDone = make(chan struct{})
	go s.loop(s.loopDone)

	if err := s.pool.Run(); err != nil && !errors.Is(err, trerrors.ErrAlreadyRunning) {
		// A shared pool may already be running; anything else is fatal for
		// this Run attempt.
		s.stop.Store(true)
		<-s.loopDone
		return err
	}

	s.running = true
	return nil
}

func (s *scheduler) Shutdown() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	done := s.loopDone
	s.mu.Unlock()

	s.stop.Store(true)
	<-done

	if s.ownPool {
		s.pool.Shutdown()
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func (s *scheduler) Pending() int {
	return int(s.pendingCount.Load())
}

// loop is the admission loop. It is the sole consumer of the intake buffer,
// so the unsynchronized pop is valid, and the sole toucher of the pending
// list. It exits only once a stop has been requested AND the pending list
// and intake buffer are both empty.
func (s *scheduler) loop(done chan struct{}) {
	defer close(done)

	for {
		drained := false
		for !s.intake.Empty() {
			s.pending.PushFront(s.intake.PopUnsafe())
			drained = true
		}

		if s.stop.Load() {
			s.dropRecurring()
		}

		admitted := s.admitDue()

		s.pendingCount.Store(int64(s.pending.Len()))
		if s.registry != nil {
			s.registry.PendingTasks.WithLabelValues(s.name).Set(float64(s.pending.Len()))
			s.registry.IntakeDepth.WithLabelValues(s.name).Set(float64(s.intake.Len()))
		}

		if s.stop.Load() && s.pending.Len() == 0 && s.intake.Empty() {
			return
		}

		// Nothing moved this iteration: wait out a tick instead of spinning.
		// TickInterval bounds admission latency for freshly due tasks.
		if !drained && admitted == 0 {
			time.Sleep(s.cfg.TickInterval)
		}
	}
}

// admitDue scans the pending list front to back once and hands every due
// entry to the worker pool. Recurring entries are rescheduled to their next
// fire time; one-shot entries are removed. Entries drained later can be
// evaluated before older ones within the same scan; the only ordering
// guarantee is that no task is dispatched before its timestamp.
func (s *scheduler) admitDue() int {
	now := s.clock.Now()
	admitted := 0

	for e := s.pending.Front(); e != nil; {
		next := e.Next()
		ent := e.Value.(entry)

		if !ent.runAt.After(now) {
			// Blocking push: a saturated pool backpressures admission.
			_ = s.pool.AddTask(ent.task)
			admitted++

			if s.registry != nil {
				s.registry.TasksAdmitted.WithLabelValues(s.name).Inc()
			}

			if ent.schedule != nil && !s.stop.Load() {
				ent.runAt = ent.schedule.Next(now.In(s.location))
				e.Value = ent
			} else {
				s.pending.Remove(e)
			}
		}

		e = next
	}

	return admitted
}

// dropRecurring removes cron entries from the pending list. Recurring
// entries never drain on their own, so a stop purges them; one-shot entries
// are kept and dispatched at their scheduled time.
func (s *scheduler) dropRecurring() {
	for e := s.pending.Front(); e != nil; {
		next := e.Next()
		if e.Value.(entry).schedule != nil {
			s.pending.Remove(e)
		}
		e = next
	}
}
