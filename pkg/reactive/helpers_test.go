package reactive

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"
)

// never returns a signal that never produces anything.
func never[T any]() Signal[T] {
	return signalFunc[T](func(func(T, error)) func() { return noop })
}

// next reads the next value of w, failing the test if none arrives.
func next[T any](t *testing.T, w *Watcher[T]) T {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := w.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	return v
}

// nextErr reads from w expecting a terminal error.
func nextErr[T any](t *testing.T, w *Watcher[T]) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := w.Next(ctx)
	if err == nil {
		t.Fatalf("Next() = %v, want error", v)
	}
	return err
}

// expectIdle fails if w has an unread value.
func expectIdle[T any](t *testing.T, w *Watcher[T]) {
	t.Helper()
	if w.Pending() {
		v, _, _ := w.Latest()
		t.Fatalf("unexpected update: %v", v)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// counter counts calls from any goroutine.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// recordingInstrumentation captures engine events.
type recordingInstrumentation struct {
	mu       sync.Mutex
	built    []string
	ops      []string
	failures []error
}

func (r *recordingInstrumentation) FieldBuilt(name string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built = append(r.built, name)
}

func (r *recordingInstrumentation) Propagated(op string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *recordingInstrumentation) SignalFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}
