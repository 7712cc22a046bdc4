package reactive

import (
	"sync/atomic"
	"time"
)

// Instrumentation receives engine events. Implementations may be called
// concurrently, sometimes with the propagation lock held, and must not
// call back into the engine.
type Instrumentation interface {
	// FieldBuilt reports that the named field ran its builder.
	FieldBuilt(name string, d time.Duration)

	// Propagated reports a completed propagation run. op is one of
	// "set", "push", "insert", "update", "remove", "move", "pop",
	// "clear", "replace", "watch" or "close".
	Propagated(op string, d time.Duration)

	// SignalFailed reports a terminal error delivered to a watcher.
	SignalFailed(err error)
}

type instrumentationHolder struct {
	Instrumentation
}

var installed atomic.Value

// SetInstrumentation installs in as the engine-wide instrumentation.
// Passing nil restores the no-op default.
func SetInstrumentation(in Instrumentation) {
	if in == nil {
		in = nopInstrumentation{}
	}
	installed.Store(instrumentationHolder{in})
}

func instrument() Instrumentation {
	if h, ok := installed.Load().(instrumentationHolder); ok {
		return h.Instrumentation
	}
	return nopInstrumentation{}
}

type nopInstrumentation struct{}

func (nopInstrumentation) FieldBuilt(string, time.Duration) {}
func (nopInstrumentation) Propagated(string, time.Duration) {}
func (nopInstrumentation) SignalFailed(error) {}
