package reactive

import (
	"sync"
	"time"
)

// committer is implemented by endpoints that stage values during a
// propagation and publish them once it has settled.
type committer interface {
	commit()
}

// engine serializes propagation through the whole graph.
//
// Every graph mutation and every subscription change runs inside
// engine.run. Nothing reachable from run may call run again.
type engine struct {
	mu sync.Mutex

	// pending holds the endpoints touched by the current propagation.
	// Guarded by mu.
	pending []committer
}

// propagation is the process-wide engine shared by every cell and vec.
var propagation engine

// run executes fn under the propagation lock and flushes staged values
// before releasing it.
func (e *engine) run(op string, fn func()) {
	start := time.Now()
	e.mu.Lock()
	defer func() {
		e.flush()
		e.mu.Unlock()
		instrument().Propagated(op, time.Since(start))
	}()
	fn()
}

// enqueue registers c to be committed at the end of the current run.
// Must be called with mu held.
func (e *engine) enqueue(c committer) {
	e.pending = append(e.pending, c)
}

// flush commits every staged endpoint. Must be called with mu held.
func (e *engine) flush() {
	for len(e.pending) > 0 {
		pending := e.pending
		e.pending = nil
		for _, c := range pending {
			c.commit()
		}
	}
}
