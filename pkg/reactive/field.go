package reactive

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/signalgraph/internal/errors"
)

// Field memoizes a derived signal for one entity.
//
// The builder passed to Get runs at most once for the lifetime of the
// field, even when several goroutines request the field for the first
// time concurrently; the others block until the winner has finished and
// then share its result. The built signal is wrapped in a Broadcaster
// that stays subscribed to its source once started, so every later
// subscriber attaches to the same live computation.
type Field[T any] struct {
	name  string
	once  sync.Once
	built atomic.Bool
	b     *Broadcaster[T]
}

// NewField creates an unbuilt field. name identifies the field in
// instrumentation and errors, e.g. "room.surface".
func NewField[T any](name string) *Field[T] {
	return &Field[T]{name: name}
}

// Name returns the field name.
func (f *Field[T]) Name() string {
	return f.name
}

// Built reports whether the builder has already run.
func (f *Field[T]) Built() bool {
	return f.built.Load()
}

// Get returns the shared signal of this field, running build on first use.
//
// build composes existing signals and should not fail. A panicking
// builder, or one returning nil, produces a field whose signal fails
// with a builder error.
func (f *Field[T]) Get(build func() Signal[T]) Signal[T] {
	f.once.Do(func() {
		start := time.Now()
		f.b = &Broadcaster[T]{source: f.build(build), keepAlive: true}
		f.built.Store(true)
		instrument().FieldBuilt(f.name, time.Since(start))
	})
	return f.b
}

func (f *Field[T]) build(build func() Signal[T]) (sig Signal[T]) {
	defer func() {
		if r := recover(); r != nil {
			sig = Fail[T](errors.New("G004").
				WithDetail(fmt.Sprintf("field %s: %v", f.name, r)))
		}
	}()
	sig = build()
	if sig == nil {
		sig = Fail[T](errors.New("G004").
			WithDetail(fmt.Sprintf("field %s: builder returned nil", f.name)))
	}
	return sig
}
