package reactive

import "slices"

// Filter returns the sub-sequence of sv whose elements satisfy pred, in
// their original relative order. Upstream diffs are translated one by one;
// a diff touching only excluded elements produces no output.
func Filter[T any](sv SignalVec[T], pred func(T) bool) SignalVec[T] {
	return signalVecFunc[T](func(emit func(VecDiff[T], error)) func() {
		f := &filterState[T]{pred: pred}
		done := false
		return sv.subscribeVec(func(d VecDiff[T], err error) {
			if done {
				return
			}
			if err != nil {
				done = true
				emit(VecDiff[T]{}, err)
				return
			}
			if out, ok := f.translate(d); ok {
				emit(out, nil)
			}
		})
	})
}

// filterState tracks which upstream positions are included downstream.
type filterState[T any] struct {
	pred func(T) bool
	mask []bool
}

// position returns the downstream index of upstream index i.
func (f *filterState[T]) position(i int) int {
	n := 0
	for _, in := range f.mask[:i] {
		if in {
			n++
		}
	}
	return n
}

func (f *filterState[T]) translate(d VecDiff[T]) (VecDiff[T], bool) {
	switch d.Kind {
	case DiffReplace:
		f.mask = make([]bool, len(d.Values))
		var kept []T
		for i, v := range d.Values {
			if f.pred(v) {
				f.mask[i] = true
				kept = append(kept, v)
			}
		}
		return VecDiff[T]{Kind: DiffReplace, Values: kept}, true

	case DiffInsertAt:
		in := f.pred(d.Value)
		f.mask = slices.Insert(f.mask, d.Index, in)
		if !in {
			return VecDiff[T]{}, false
		}
		return VecDiff[T]{Kind: DiffInsertAt, Index: f.position(d.Index), Value: d.Value}, true

	case DiffUpdateAt:
		was, in := f.mask[d.Index], f.pred(d.Value)
		f.mask[d.Index] = in
		pos := f.position(d.Index)
		switch {
		case was && in:
			return VecDiff[T]{Kind: DiffUpdateAt, Index: pos, Value: d.Value}, true
		case was:
			return VecDiff[T]{Kind: DiffRemoveAt, Index: pos}, true
		case in:
			return VecDiff[T]{Kind: DiffInsertAt, Index: pos, Value: d.Value}, true
		}
		return VecDiff[T]{}, false

	case DiffRemoveAt:
		was := f.mask[d.Index]
		pos := f.position(d.Index)
		f.mask = slices.Delete(f.mask, d.Index, d.Index+1)
		if !was {
			return VecDiff[T]{}, false
		}
		return VecDiff[T]{Kind: DiffRemoveAt, Index: pos}, true

	case DiffMove:
		was := f.mask[d.Index]
		from := f.position(d.Index)
		f.mask = slices.Delete(f.mask, d.Index, d.Index+1)
		f.mask = slices.Insert(f.mask, d.NewIndex, was)
		if !was {
			return VecDiff[T]{}, false
		}
		return VecDiff[T]{Kind: DiffMove, Index: from, NewIndex: f.position(d.NewIndex)}, true

	case DiffPush:
		in := f.pred(d.Value)
		f.mask = append(f.mask, in)
		if !in {
			return VecDiff[T]{}, false
		}
		return VecDiff[T]{Kind: DiffPush, Value: d.Value}, true

	case DiffPop:
		was := f.mask[len(f.mask)-1]
		f.mask = f.mask[:len(f.mask)-1]
		if !was {
			return VecDiff[T]{}, false
		}
		return VecDiff[T]{Kind: DiffPop}, true

	case DiffClear:
		f.mask = nil
		return VecDiff[T]{Kind: DiffClear}, true
	}
	return VecDiff[T]{}, false
}
