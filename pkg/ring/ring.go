package ring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Buffer is a fixed-capacity circular queue for a single producer and one or
// more consumers.
//
// The read and write counters increase monotonically and are taken modulo the
// capacity to address slots, so `write - read` is always the number of live
// elements. The producer side is lock-free: Push only waits when the buffer
// is full. Consumers choose between PopUnsafe (lock-free, single consumer
// only), and Pop/TryPopFor, which serialize against each other on the
// consumer lock.
type Buffer[T any] struct {
	buf      []T
	capacity uint64

	read  atomic.Uint64
	write atomic.Uint64

	// mu/cond implement the broadcast-and-recheck protocol: every counter
	// change broadcasts, every waiter loops on its own condition.
	mu   sync.Mutex
	cond *sync.Cond

	// popLock serializes Pop and TryPopFor. A channel semaphore rather than
	// a sync.Mutex so TryPopFor can bound the acquisition with a timer.
	popLock chan struct{}
}

// New creates a buffer with the given capacity.
// Panics if capacity is not positive.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}

	b := &Buffer[T]{
		buf:      make([]T, capacity),
		capacity: uint64(capacity),
		popLock:  make(chan struct{}, 1),
	}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Push appends v to the buffer, blocking while the buffer is full until a
// consumer vacates the slot it is about to reuse.
//
// Push must only be called from one goroutine at a time: the buffer has a
// single-producer contract. It never drops or overwrites data; a producer
// that outruns its consumers is throttled to their pace.
func (b *Buffer[T]) Push(v T) {
	w := b.write.Load()

	if w-b.read.Load() == b.capacity {
		b.mu.Lock()
		for w-b.read.Load() == b.capacity {
			b.cond.Wait()
		}
		b.mu.Unlock()
	}

	b.buf[w%b.capacity] = v
	b.write.Add(1)
	b.broadcast()
}

// PopUnsafe removes and returns the next element without taking the consumer
// lock. It is only valid when exactly one consumer exists for the buffer's
// lifetime.
//
// Calling PopUnsafe on an empty buffer is a contract violation and panics:
// the single consumer is expected to gate on Empty first.
func (b *Buffer[T]) PopUnsafe() T {
	r := b.read.Load()
	if r >= b.write.Load() {
		panic("ring: PopUnsafe on empty buffer")
	}

	v := b.take(r)
	b.read.Add(1)
	b.broadcast()
	return v
}

// Pop removes and returns the next element, blocking while the buffer is
// empty. Safe for any number of concurrent consumers; they serialize on the
// consumer lock.
func (b *Buffer[T]) Pop() T {
	b.popLock <- struct{}{}
	defer func() { <-b.popLock }()

	if b.read.Load() >= b.write.Load() {
		b.mu.Lock()
		for b.read.Load() >= b.write.Load() {
			b.cond.Wait()
		}
		b.mu.Unlock()
	}

	v := b.take(b.read.Load())
	b.read.Add(1)
	b.broadcast()
	return v
}

// TryPopFor attempts to acquire the consumer lock within timeout. If the
// lock is not acquired in time, or the buffer turns out to be empty once it
// is, TryPopFor returns the zero value and false. Only the lock acquisition
// is time-bounded; an empty buffer returns immediately rather than waiting
// out the remainder.
func (b *Buffer[T]) TryPopFor(timeout time.Duration) (T, bool) {
	var zero T

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case b.popLock <- struct{}{}:
	case <-timer.C:
		return zero, false
	}
	defer func() { <-b.popLock }()

	r := b.read.Load()
	if r >= b.write.Load() {
		return zero, false
	}

	v := b.take(r)
	b.read.Add(1)
	b.broadcast()
	return v, true
}

// Empty reports whether the buffer currently holds no elements. The answer
// is a racy snapshot and may be stale the instant it returns; use it as a
// loop-continuation heuristic, not as a linearizable emptiness proof.
func (b *Buffer[T]) Empty() bool {
	return b.read.Load() >= b.write.Load()
}

// Len returns a racy snapshot of the number of buffered elements.
func (b *Buffer[T]) Len() int {
	w := b.write.Load()
	r := b.read.Load()
	if r >= w {
		return 0
	}
	return int(w - r)
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer[T]) Cap() int {
	return int(b.capacity)
}

// take reads slot r and zeroes it so the buffer does not pin the value
// (task closures in particular) until the slot is overwritten.
func (b *Buffer[T]) take(r uint64) T {
	var zero T
	i := r % b.capacity
	v := b.buf[i]
	b.buf[i] = zero
	return v
}

// broadcast wakes every waiter after a counter change. Taking mu around the
// Broadcast pairs with the check-then-Wait done under mu by waiters, so a
// counter update cannot slip between a waiter's check and its Wait.
func (b *Buffer[T]) broadcast() {
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}
