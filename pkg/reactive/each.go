package reactive

import "slices"

// Number is the set of types Sum can add.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// MapEach maps every element of sv to a signal and emits the list of the
// current values of those signals, in element order.
//
// Per-element subscriptions follow the diffs of sv: an inserted element is
// subscribed, a removed one is cancelled, and untouched elements keep their
// subscription. The list is re-emitted whenever membership or any element
// value changes, once every element has produced a value.
func MapEach[T, U any](sv SignalVec[T], f func(T) Signal[U]) Signal[[]U] {
	return signalFunc[[]U](func(emit func([]U, error)) func() {
		s := &eachState[T, U]{f: f, emit: emit}
		cancel := sv.subscribeVec(s.apply)
		return func() {
			cancel()
			s.clear()
		}
	})
}

type eachEntry[U any] struct {
	value   U
	has     bool
	removed bool
	cancel  func()
}

type eachState[T, U any] struct {
	f    func(T) Signal[U]
	emit func([]U, error)

	entries  []*eachEntry[U]
	started  bool
	applying bool
	done     bool
}

func (s *eachState[T, U]) subscribe(x T) *eachEntry[U] {
	e := &eachEntry[U]{}
	e.cancel = s.f(x).subscribe(func(v U, err error) {
		if s.done || e.removed {
			return
		}
		if err != nil {
			s.fail(err)
			return
		}
		e.value = v
		e.has = true
		if !s.applying {
			s.publish()
		}
	})
	return e
}

func (s *eachState[T, U]) drop(e *eachEntry[U]) {
	e.removed = true
	e.cancel()
}

func (s *eachState[T, U]) clear() {
	for _, e := range s.entries {
		s.drop(e)
	}
	s.entries = nil
}

func (s *eachState[T, U]) apply(d VecDiff[T], err error) {
	if s.done {
		return
	}
	if err != nil {
		s.fail(err)
		return
	}

	s.applying = true
	switch d.Kind {
	case DiffReplace:
		s.clear()
		s.entries = make([]*eachEntry[U], 0, len(d.Values))
		for _, x := range d.Values {
			s.entries = append(s.entries, s.subscribe(x))
		}
	case DiffInsertAt:
		s.entries = slices.Insert(s.entries, d.Index, s.subscribe(d.Value))
	case DiffUpdateAt:
		s.drop(s.entries[d.Index])
		s.entries[d.Index] = s.subscribe(d.Value)
	case DiffRemoveAt:
		s.drop(s.entries[d.Index])
		s.entries = slices.Delete(s.entries, d.Index, d.Index+1)
	case DiffMove:
		e := s.entries[d.Index]
		s.entries = slices.Delete(s.entries, d.Index, d.Index+1)
		s.entries = slices.Insert(s.entries, d.NewIndex, e)
	case DiffPush:
		s.entries = append(s.entries, s.subscribe(d.Value))
	case DiffPop:
		last := len(s.entries) - 1
		s.drop(s.entries[last])
		s.entries = s.entries[:last]
	case DiffClear:
		s.clear()
	}
	s.applying = false
	s.started = true

	s.publish()
}

func (s *eachState[T, U]) publish() {
	if s.done || !s.started {
		return
	}
	values := make([]U, len(s.entries))
	for i, e := range s.entries {
		if !e.has {
			return
		}
		values[i] = e.value
	}
	s.emit(values, nil)
}

func (s *eachState[T, U]) fail(err error) {
	s.done = true
	s.emit(nil, err)
}

// Flatten concatenates a signal of nested slices.
func Flatten[T any](sig Signal[[][]T]) Signal[[]T] {
	return Map(sig, func(nested [][]T) []T {
		var out []T
		for _, inner := range nested {
			out = append(out, inner...)
		}
		return out
	})
}

// Sum maps every element of sv to a numeric signal and emits the sum of
// their current values. The sum is recomputed from the current element
// set on every update; an empty sequence sums to zero.
func Sum[T any, N Number](sv SignalVec[T], f func(T) Signal[N]) Signal[N] {
	return Map(MapEach(sv, f), sumOf[N])
}

func sumOf[N Number](values []N) N {
	var total N
	for _, v := range values {
		total += v
	}
	return total
}
