package reactive

// Broadcaster shares one subscription of a source signal between any
// number of subscribers. The source is subscribed when the first
// subscriber arrives; later subscribers receive the cached value (or
// terminal error) immediately and then follow the same stream, without
// re-running the source computation.
type Broadcaster[T any] struct {
	source Signal[T]

	// keepAlive keeps the source subscribed after the last subscriber
	// leaves. Fields set it so a built chain is never torn down.
	keepAlive bool

	// Everything below is guarded by the propagation lock.
	subs    subscribers[T]
	cancel  func()
	started bool
	has     bool
	value   T
	err     error
}

// Broadcast wraps sig in a Broadcaster. The source is unsubscribed again
// when the last subscriber cancels.
func Broadcast[T any](sig Signal[T]) *Broadcaster[T] {
	return &Broadcaster[T]{source: sig}
}

func (b *Broadcaster[T]) subscribe(emit func(T, error)) func() {
	cancel := b.subs.add(emit)
	switch {
	case !b.started:
		b.started = true
		b.cancel = b.source.subscribe(b.receive)
	case b.err != nil:
		var zero T
		emit(zero, b.err)
	case b.has:
		emit(b.value, nil)
	}
	return func() {
		cancel()
		if !b.keepAlive && b.started && b.subs.len() == 0 {
			b.stop()
		}
	}
}

func (b *Broadcaster[T]) receive(v T, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
	} else {
		b.value = v
		b.has = true
	}
	b.subs.emit(v, err)
}

func (b *Broadcaster[T]) stop() {
	cancel := b.cancel
	b.cancel = nil
	b.started = false
	b.has = false
	b.err = nil
	var zero T
	b.value = zero
	if cancel != nil {
		cancel()
	}
}
