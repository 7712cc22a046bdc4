package reactive

// Signal is a push-based stream of values: the current value, then every
// future change. A Signal is a description, not a running computation;
// each subscription instantiates its own state and owns its upstream
// subscriptions. Wrap a Signal in a Broadcaster (or a Field) to share one
// computation between many subscribers.
//
// A delivery carries either a value or a non-nil error. An error is
// terminal: nothing is delivered after it.
type Signal[T any] interface {
	// subscribe registers emit and returns the function that cancels the
	// subscription. Sources deliver their current value, if any, before
	// subscribe returns. Called with the propagation lock held.
	subscribe(emit func(T, error)) (cancel func())
}

// signalFunc adapts a subscribe function to Signal.
type signalFunc[T any] func(emit func(T, error)) func()

func (f signalFunc[T]) subscribe(emit func(T, error)) func() {
	return f(emit)
}

func noop() {}

// Const returns a signal that emits v once and never changes.
func Const[T any](v T) Signal[T] {
	return signalFunc[T](func(emit func(T, error)) func() {
		emit(v, nil)
		return noop
	})
}

// Fail returns a signal that immediately fails with err.
func Fail[T any](err error) Signal[T] {
	return signalFunc[T](func(emit func(T, error)) func() {
		var zero T
		emit(zero, err)
		return noop
	})
}

// Map returns a signal whose value is f applied to the latest value of sig.
func Map[T, U any](sig Signal[T], f func(T) U) Signal[U] {
	return TryMap(sig, func(v T) (U, error) {
		return f(v), nil
	})
}

// TryMap is like Map, but f may fail. The first error returned by f
// terminates the resulting signal.
func TryMap[T, U any](sig Signal[T], f func(T) (U, error)) Signal[U] {
	return signalFunc[U](func(emit func(U, error)) func() {
		done := false
		return sig.subscribe(func(v T, err error) {
			if done {
				return
			}
			var out U
			if err == nil {
				out, err = f(v)
			}
			if err != nil {
				done = true
				var zero U
				emit(zero, err)
				return
			}
			emit(out, nil)
		})
	})
}
