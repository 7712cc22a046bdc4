package observe

import (
	"time"

	"github.com/vango-dev/signalgraph/pkg/reactive"
)

// Multi fans every event out to each of its members in order.
type Multi []reactive.Instrumentation

func (m Multi) FieldBuilt(name string, d time.Duration) {
	for _, in := range m {
		in.FieldBuilt(name, d)
	}
}

func (m Multi) Propagated(op string, d time.Duration) {
	for _, in := range m {
		in.Propagated(op, d)
	}
}

func (m Multi) SignalFailed(err error) {
	for _, in := range m {
		in.SignalFailed(err)
	}
}

// Install makes ins the engine-wide instrumentation. Calling it with no
// arguments restores the no-op default.
func Install(ins ...reactive.Instrumentation) {
	switch len(ins) {
	case 0:
		reactive.SetInstrumentation(nil)
	case 1:
		reactive.SetInstrumentation(ins[0])
	default:
		reactive.SetInstrumentation(Multi(ins))
	}
}
