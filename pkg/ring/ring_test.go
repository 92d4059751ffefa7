package ring

import (
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/taskring/internal/testutil"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		capacity    int
		expectPanic bool
	}{
		{"valid capacity", 16, false},
		{"capacity one", 1, false},
		{"zero capacity", 0, true},
		{"negative capacity", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Error("expected panic")
					}
				}()
			}

			buf := New[int](tt.capacity)
			if !tt.expectPanic {
				testutil.AssertEqual(t, buf.Cap(), tt.capacity)
				testutil.AssertEqual(t, buf.Empty(), true)
			}
		})
	}
}

func TestFIFOSingleConsumer(t *testing.T) {
	const n = 32
	buf := New[int](n)

	for i := 0; i < n; i++ {
		buf.Push(i)
	}
	testutil.AssertEqual(t, buf.Len(), n)

	for i := 0; i < n; i++ {
		testutil.AssertEqual(t, buf.PopUnsafe(), i)
	}
	testutil.AssertEqual(t, buf.Empty(), true)
}

func TestWrapAround(t *testing.T) {
	buf := New[int](4)

	// Cycle through the backing array several times so the logical counters
	// outrun the capacity.
	next := 0
	for round := 0; round < 5; round++ {
		for i := 0; i < 4; i++ {
			buf.Push(next + i)
		}
		for i := 0; i < 4; i++ {
			testutil.AssertEqual(t, buf.PopUnsafe(), next+i)
		}
		next += 4
	}
}

func TestPopUnsafeEmptyPanics(t *testing.T) {
	buf := New[string](4)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for PopUnsafe on empty buffer")
		}
	}()
	buf.PopUnsafe()
}

func TestConcurrentConsumersExactlyOnce(t *testing.T) {
	const (
		n         = 500
		consumers = 4
	)
	buf := New[int](16)

	results := make(chan int, n)
	var wg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := buf.TryPopFor(100 * time.Millisecond)
				if !ok {
					if len(results) == n {
						return
					}
					continue
				}
				results <- v
			}
		}()
	}

	for i := 0; i < n; i++ {
		buf.Push(i)
	}

	wg.Wait()
	close(results)

	seen := make(map[int]int, n)
	for v := range results {
		seen[v]++
	}
	testutil.AssertEqual(t, len(seen), n)
	for v, count := range seen {
		if count != 1 {
			t.Errorf("value %d delivered %d times, want exactly once", v, count)
		}
	}
}

func TestBackpressure(t *testing.T) {
	const capacity = 4
	buf := New[int](capacity)

	for i := 0; i < capacity; i++ {
		buf.Push(i)
	}

	pushed := make(chan struct{})
	go func() {
		buf.Push(capacity)
		close(pushed)
	}()

	// The producer must stay blocked while the buffer is full.
	select {
	case <-pushed:
		t.Fatal("push into a full buffer did not block")
	case <-time.After(100 * time.Millisecond):
	}

	testutil.AssertEqual(t, buf.Pop(), 0)

	// One vacated slot releases exactly the blocked push.
	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("push did not complete after a slot was vacated")
	}
	testutil.AssertEqual(t, buf.Len(), capacity)
}

func TestPopBlocksUntilPush(t *testing.T) {
	buf := New[int](4)

	got := make(chan int)
	go func() {
		got <- buf.Pop()
	}()

	select {
	case v := <-got:
		t.Fatalf("Pop returned %d from an empty buffer", v)
	case <-time.After(50 * time.Millisecond):
	}

	buf.Push(7)

	select {
	case v := <-got:
		testutil.AssertEqual(t, v, 7)
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after a push")
	}
}

func TestTryPopForEmptyReturnsImmediately(t *testing.T) {
	buf := New[int](4)

	start := time.Now()
	_, ok := buf.TryPopFor(500 * time.Millisecond)
	elapsed := time.Since(start)

	testutil.AssertEqual(t, ok, false)
	if elapsed > 100*time.Millisecond {
		t.Errorf("TryPopFor on empty uncontended buffer took %v, want immediate return", elapsed)
	}
}

func TestTryPopForBoundsLockAcquisition(t *testing.T) {
	buf := New[int](4)

	// Park a blocking Pop so the consumer lock stays held.
	go func() {
		buf.Pop()
	}()
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	_, ok := buf.TryPopFor(100 * time.Millisecond)
	elapsed := time.Since(start)

	testutil.AssertEqual(t, ok, false)
	if elapsed < 100*time.Millisecond {
		t.Errorf("TryPopFor returned after %v, want the full 100ms lock timeout", elapsed)
	}
	if elapsed > 400*time.Millisecond {
		t.Errorf("TryPopFor returned after %v, want a bounded margin over 100ms", elapsed)
	}

	// Unblock the parked Pop.
	buf.Push(1)
}

func TestTryPopForReturnsValue(t *testing.T) {
	buf := New[string](4)
	buf.Push("task")

	v, ok := buf.TryPopFor(100 * time.Millisecond)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, "task")
}

func TestLenSnapshot(t *testing.T) {
	buf := New[int](8)
	testutil.AssertEqual(t, buf.Len(), 0)

	buf.Push(1)
	buf.Push(2)
	testutil.AssertEqual(t, buf.Len(), 2)

	buf.PopUnsafe()
	testutil.AssertEqual(t, buf.Len(), 1)
}
