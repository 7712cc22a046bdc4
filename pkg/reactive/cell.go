package reactive

import "sync"

// Cell is a mutable leaf of the graph. Writing a cell is the only way a
// change enters the graph; every signal built on it recomputes before Set
// returns.
//
// Cells are safe for concurrent use. The owning entity is expected to be
// the only writer.
type Cell[T any] struct {
	id uint64

	// mu protects value for lock-free readers.
	mu    sync.RWMutex
	value T

	// equal decides whether a write changes the value. Nil uses
	// defaultEquals.
	equal func(T, T) bool

	subs subscribers[T]
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		id:    nextID(),
		value: initial,
	}
}

// WithEquals configures the equality used to drop no-op writes.
// It must be called before the cell is shared.
func (c *Cell[T]) WithEquals(fn func(T, T) bool) *Cell[T] {
	c.equal = fn
	return c
}

// ID returns the unique identifier of this cell.
func (c *Cell[T]) ID() uint64 {
	return c.id
}

// Get returns the current value without subscribing.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Signal returns the cell as a read-only signal: the current value on
// subscription, then every change.
func (c *Cell[T]) Signal() Signal[T] {
	return c
}

// Set stores value and propagates it if it differs from the current one.
func (c *Cell[T]) Set(value T) {
	c.Update(func(T) T { return value })
}

// Update atomically replaces the value with fn(current) and propagates
// the result if it changed.
func (c *Cell[T]) Update(fn func(T) T) {
	propagation.run("set", func() {
		c.mu.Lock()
		next := fn(c.value)
		if c.equals(c.value, next) {
			c.mu.Unlock()
			return
		}
		c.value = next
		c.mu.Unlock()

		c.subs.emit(next, nil)
	})
}

func (c *Cell[T]) subscribe(emit func(T, error)) func() {
	cancel := c.subs.add(emit)
	emit(c.Get(), nil)
	return cancel
}

func (c *Cell[T]) equals(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return defaultEquals(a, b)
}
