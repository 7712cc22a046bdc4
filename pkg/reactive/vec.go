package reactive

import (
	"fmt"
	"slices"
	"sync"
)

// DiffKind identifies the kind of change carried by a VecDiff.
type DiffKind int

const (
	// DiffReplace replaces the whole sequence with Values.
	DiffReplace DiffKind = iota
	// DiffInsertAt inserts Value at Index.
	DiffInsertAt
	// DiffUpdateAt overwrites the element at Index with Value.
	DiffUpdateAt
	// DiffRemoveAt removes the element at Index.
	DiffRemoveAt
	// DiffMove moves the element at Index to NewIndex.
	DiffMove
	// DiffPush appends Value.
	DiffPush
	// DiffPop removes the last element.
	DiffPop
	// DiffClear removes every element.
	DiffClear
)

var diffKindNames = [...]string{"replace", "insert", "update", "remove", "move", "push", "pop", "clear"}

// String returns the lower-case name of the kind.
func (k DiffKind) String() string {
	if int(k) < len(diffKindNames) {
		return diffKindNames[k]
	}
	return fmt.Sprintf("DiffKind(%d)", int(k))
}

// VecDiff is one incremental change to a dynamic sequence.
type VecDiff[T any] struct {
	Kind     DiffKind
	Index    int
	NewIndex int
	Value    T
	Values   []T
}

// Apply returns s with d applied. s may be modified in place; Replace
// copies Values so the result never aliases the diff.
func (d VecDiff[T]) Apply(s []T) []T {
	switch d.Kind {
	case DiffReplace:
		return slices.Clone(d.Values)
	case DiffInsertAt:
		return slices.Insert(s, d.Index, d.Value)
	case DiffUpdateAt:
		s[d.Index] = d.Value
		return s
	case DiffRemoveAt:
		return slices.Delete(s, d.Index, d.Index+1)
	case DiffMove:
		v := s[d.Index]
		s = slices.Delete(s, d.Index, d.Index+1)
		return slices.Insert(s, d.NewIndex, v)
	case DiffPush:
		return append(s, d.Value)
	case DiffPop:
		var zero T
		s[len(s)-1] = zero
		return s[:len(s)-1]
	case DiffClear:
		return nil
	}
	panic(fmt.Sprintf("reactive: unknown diff kind %v", d.Kind))
}

// SignalVec is a push-based stream of changes to a sequence. The first
// delivery of every subscription is a DiffReplace with the current
// contents. As with Signal, an error is terminal.
type SignalVec[T any] interface {
	subscribeVec(emit func(VecDiff[T], error)) (cancel func())
}

type signalVecFunc[T any] func(emit func(VecDiff[T], error)) func()

func (f signalVecFunc[T]) subscribeVec(emit func(VecDiff[T], error)) func() {
	return f(emit)
}

// Vec is a mutable, observable sequence. Every mutation is propagated as a
// single VecDiff before the call returns. Index arguments out of range
// panic, as they would on a slice.
type Vec[T any] struct {
	id uint64

	// mu protects values for lock-free readers.
	mu     sync.RWMutex
	values []T

	subs subscribers[VecDiff[T]]
}

// NewVec creates a Vec holding values.
func NewVec[T any](values ...T) *Vec[T] {
	return &Vec[T]{
		id:     nextID(),
		values: slices.Clone(values),
	}
}

// ID returns the unique identifier of this vec.
func (v *Vec[T]) ID() uint64 {
	return v.id
}

// Len returns the current number of elements.
func (v *Vec[T]) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.values)
}

// Snapshot returns a copy of the current elements.
func (v *Vec[T]) Snapshot() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.values)
}

// SignalVec returns the vec as a stream of diffs.
func (v *Vec[T]) SignalVec() SignalVec[T] {
	return v
}

// Push appends x.
func (v *Vec[T]) Push(x T) {
	v.mutate(VecDiff[T]{Kind: DiffPush, Value: x})
}

// InsertAt inserts x at index i.
func (v *Vec[T]) InsertAt(i int, x T) {
	v.mutate(VecDiff[T]{Kind: DiffInsertAt, Index: i, Value: x})
}

// SetAt overwrites the element at index i.
func (v *Vec[T]) SetAt(i int, x T) {
	v.mutate(VecDiff[T]{Kind: DiffUpdateAt, Index: i, Value: x})
}

// RemoveAt removes the element at index i.
func (v *Vec[T]) RemoveAt(i int) {
	v.mutate(VecDiff[T]{Kind: DiffRemoveAt, Index: i})
}

// Move moves the element at index from to index to.
func (v *Vec[T]) Move(from, to int) {
	v.mutate(VecDiff[T]{Kind: DiffMove, Index: from, NewIndex: to})
}

// Pop removes the last element. It is a no-op on an empty vec.
func (v *Vec[T]) Pop() {
	if v.Len() == 0 {
		return
	}
	v.mutate(VecDiff[T]{Kind: DiffPop})
}

// Clear removes every element.
func (v *Vec[T]) Clear() {
	v.mutate(VecDiff[T]{Kind: DiffClear})
}

// Replace replaces the whole contents with values.
func (v *Vec[T]) Replace(values []T) {
	v.mutate(VecDiff[T]{Kind: DiffReplace, Values: slices.Clone(values)})
}

func (v *Vec[T]) mutate(d VecDiff[T]) {
	propagation.run(d.Kind.String(), func() {
		v.mu.Lock()
		v.values = d.Apply(v.values)
		v.mu.Unlock()

		v.subs.emit(d, nil)
	})
}

func (v *Vec[T]) subscribeVec(emit func(VecDiff[T], error)) func() {
	cancel := v.subs.add(emit)
	emit(VecDiff[T]{Kind: DiffReplace, Values: v.Snapshot()}, nil)
	return cancel
}

// ToSignal collects sv into a signal of whole slices. It emits after
// every diff delivered by sv; each emitted slice is a fresh copy.
func ToSignal[T any](sv SignalVec[T]) Signal[[]T] {
	return signalFunc[[]T](func(emit func([]T, error)) func() {
		var values []T
		done := false
		return sv.subscribeVec(func(d VecDiff[T], err error) {
			if done {
				return
			}
			if err != nil {
				done = true
				emit(nil, err)
				return
			}
			values = d.Apply(values)
			emit(slices.Clone(values), nil)
		})
	})
}

// ToSignalVec turns a signal of slices into a SignalVec that replaces its
// whole contents on every change.
func ToSignalVec[T any](sig Signal[[]T]) SignalVec[T] {
	return signalVecFunc[T](func(emit func(VecDiff[T], error)) func() {
		return sig.subscribe(func(values []T, err error) {
			if err != nil {
				emit(VecDiff[T]{}, err)
				return
			}
			emit(VecDiff[T]{Kind: DiffReplace, Values: values}, nil)
		})
	})
}
