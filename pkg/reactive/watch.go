package reactive

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Watcher.Next after Close.
	ErrClosed = errors.New("reactive: watcher closed")

	// ErrNoValue is returned by Sample when the signal has not produced a
	// value at subscription time.
	ErrNoValue = errors.New("reactive: signal has no current value")
)

// Watcher is a subscriber endpoint for host code. It keeps only the latest
// settled value: a slow reader skips intermediate values but never sees
// them out of order.
//
// A Watcher belongs to one consumer goroutine. Watch the signal again to
// get an independent subscriber.
type Watcher[T any] struct {
	// mu guards the published state read by Next and Latest.
	mu      sync.Mutex
	latest  T
	err     error
	version uint64
	seen    uint64
	closed  bool
	changed chan struct{}

	// Staged state, guarded by the propagation lock.
	staged     T
	hasStaged  bool
	stagedErr  error
	queued     bool
	terminated bool
	detached   bool
	cancel     func()
}

// Watch subscribes to sig. The current value, if sig has one, is available
// to the first Next call without waiting.
func Watch[T any](sig Signal[T]) *Watcher[T] {
	w := &Watcher[T]{changed: make(chan struct{}, 1)}
	propagation.run("watch", func() {
		cancel := sig.subscribe(w.receive)
		if w.terminated {
			cancel()
			return
		}
		w.cancel = cancel
	})
	return w
}

func (w *Watcher[T]) receive(v T, err error) {
	if w.terminated || w.detached {
		return
	}
	if err != nil {
		w.terminated = true
		w.stagedErr = err
		if w.cancel != nil {
			cancel := w.cancel
			w.cancel = nil
			cancel()
		}
	} else {
		w.staged = v
		w.hasStaged = true
	}
	if !w.queued {
		w.queued = true
		propagation.enqueue(w)
	}
}

func (w *Watcher[T]) commit() {
	w.queued = false

	w.mu.Lock()
	if w.hasStaged {
		w.latest = w.staged
		w.version++
		var zero T
		w.staged = zero
		w.hasStaged = false
	}
	failed := w.stagedErr
	if failed != nil {
		w.err = failed
		w.stagedErr = nil
	}
	w.mu.Unlock()

	if failed != nil {
		instrument().SignalFailed(failed)
	}
	w.wake()
}

func (w *Watcher[T]) wake() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

// Next returns the next value not yet returned by Next, waiting for one if
// necessary. After a terminal error it returns that error; after Close it
// returns ErrClosed. It returns ctx.Err() if ctx ends first.
func (w *Watcher[T]) Next(ctx context.Context) (T, error) {
	var zero T
	for {
		w.mu.Lock()
		if w.version > w.seen {
			w.seen = w.version
			v := w.latest
			w.mu.Unlock()
			return v, nil
		}
		err, closed := w.err, w.closed
		w.mu.Unlock()

		switch {
		case err != nil:
			return zero, err
		case closed:
			return zero, ErrClosed
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-w.changed:
		}
	}
}

// Latest returns the most recent settled value without waiting. ok is
// false if no value has been published yet. err is the terminal error, if
// the signal has failed.
func (w *Watcher[T]) Latest() (v T, ok bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest, w.version > 0, w.err
}

// Pending reports whether a value is waiting to be returned by Next.
func (w *Watcher[T]) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.version > w.seen
}

// Close detaches the watcher. Delivery stops immediately; other
// subscribers of the same signal are unaffected.
func (w *Watcher[T]) Close() {
	propagation.run("close", func() {
		if w.detached {
			return
		}
		w.detached = true
		if w.cancel != nil {
			w.cancel()
			w.cancel = nil
		}
	})

	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.wake()
}

// ForEach calls fn with the current value of sig and then with every
// settled change, until ctx ends, sig fails or fn returns an error.
func ForEach[T any](ctx context.Context, sig Signal[T], fn func(T) error) error {
	w := Watch(sig)
	defer w.Close()
	for {
		v, err := w.Next(ctx)
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// Sample returns the value sig has right now. It fails with the signal's
// terminal error, or ErrNoValue if sig does not produce a value on
// subscription.
func Sample[T any](sig Signal[T]) (T, error) {
	w := Watch(sig)
	defer w.Close()
	v, ok, err := w.Latest()
	switch {
	case err != nil:
		var zero T
		return zero, err
	case ok:
		return v, nil
	}
	return v, ErrNoValue
}
