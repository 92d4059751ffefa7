/*
Package ring provides a fixed-capacity single-producer circular buffer with a
lock-free fast path for the single-consumer case.

The buffer is the queueing primitive underneath the taskring worker pool and
scheduler, but it is usable on its own wherever one goroutine produces and a
bounded set of goroutines consume.

Basic usage:

	buf := ring.New[int](64)

	// Producer (one goroutine only)
	buf.Push(42)

	// Single dedicated consumer: lock-free fast path
	if !buf.Empty() {
		v := buf.PopUnsafe()
		_ = v
	}

	// Multiple consumers: serialized on the consumer lock
	v := buf.Pop()                              // blocks while empty
	v, ok := buf.TryPopFor(500 * time.Millisecond) // bounded lock acquisition
	_, _ = v, ok

Contracts:

  - Exactly one goroutine may call Push at a time. A full buffer blocks the
    producer (backpressure) instead of dropping or overwriting.
  - PopUnsafe requires a single consumer for the buffer's whole lifetime and
    panics when called on an empty buffer. That panic is a programming error,
    not a runtime condition: gate on Empty first.
  - Pop and TryPopFor are safe for any number of consumers. Every pushed
    element is delivered to exactly one of them; delivery order across
    consumers is not specified.
  - Empty and Len are racy snapshots, suitable only as heuristics.

TryPopFor bounds the acquisition of the consumer lock, not the wait for data:
once the lock is held, an empty buffer returns immediately with ok == false.
Treat that as "try again", not as an error.
*/
package ring
