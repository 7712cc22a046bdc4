package reactive

import (
	"errors"
	"slices"
	"testing"
)

func TestVecDiffApply(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		diff VecDiff[string]
		want []string
	}{
		{"replace", []string{"a"}, VecDiff[string]{Kind: DiffReplace, Values: []string{"x", "y"}}, []string{"x", "y"}},
		{"insert", []string{"a", "c"}, VecDiff[string]{Kind: DiffInsertAt, Index: 1, Value: "b"}, []string{"a", "b", "c"}},
		{"update", []string{"a", "b"}, VecDiff[string]{Kind: DiffUpdateAt, Index: 1, Value: "z"}, []string{"a", "z"}},
		{"remove", []string{"a", "b", "c"}, VecDiff[string]{Kind: DiffRemoveAt, Index: 0}, []string{"b", "c"}},
		{"move forward", []string{"a", "b", "c"}, VecDiff[string]{Kind: DiffMove, Index: 0, NewIndex: 2}, []string{"b", "c", "a"}},
		{"move back", []string{"a", "b", "c"}, VecDiff[string]{Kind: DiffMove, Index: 2, NewIndex: 0}, []string{"c", "a", "b"}},
		{"push", []string{"a"}, VecDiff[string]{Kind: DiffPush, Value: "b"}, []string{"a", "b"}},
		{"pop", []string{"a", "b"}, VecDiff[string]{Kind: DiffPop}, []string{"a"}},
		{"clear", []string{"a", "b"}, VecDiff[string]{Kind: DiffClear}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.diff.Apply(slices.Clone(tt.in))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiffKindString(t *testing.T) {
	if DiffMove.String() != "move" {
		t.Errorf("DiffMove.String() = %q", DiffMove.String())
	}
	if DiffKind(42).String() != "DiffKind(42)" {
		t.Errorf("unknown kind = %q", DiffKind(42).String())
	}
}

func TestVecOperations(t *testing.T) {
	v := NewVec(1, 2)
	w := Watch(ToSignal(v.SignalVec()))
	defer w.Close()

	if got := next(t, w); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("initial = %v", got)
	}

	v.Push(3)
	v.InsertAt(0, 0)
	if got := next(t, w); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("got %v", got)
	}

	v.Pop()
	v.Pop()
	v.Pop()
	v.Pop()
	v.Pop()
	if v.Len() != 0 {
		t.Errorf("Len() = %d after popping everything", v.Len())
	}
	if got := next(t, w); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestFilterTracksSource(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	v := NewVec[int]()
	w := Watch(ToSignal(Filter(v.SignalVec(), even)))
	defer w.Close()

	steps := []struct {
		name string
		op   func()
	}{
		{"replace", func() { v.Replace([]int{1, 2, 3, 4, 5, 6}) }},
		{"push even", func() { v.Push(8) }},
		{"push odd", func() { v.Push(7) }},
		{"insert even at front", func() { v.InsertAt(0, 10) }},
		{"insert odd", func() { v.InsertAt(2, 3) }},
		{"update odd to even", func() { v.SetAt(1, 4) }},
		{"update even to odd", func() { v.SetAt(0, 5) }},
		{"update even to even", func() { v.SetAt(3, 12) }},
		{"update odd to odd", func() { v.SetAt(2, 9) }},
		{"remove included", func() { v.RemoveAt(1) }},
		{"remove excluded", func() { v.RemoveAt(0) }},
		{"move included forward", func() { v.Move(1, 5) }},
		{"move excluded", func() { v.Move(0, 3) }},
		{"move included back", func() { v.Move(6, 0) }},
		{"pop odd", func() { v.Pop() }},
		{"pop even", func() { v.Pop() }},
		{"clear", func() { v.Clear() }},
		{"push after clear", func() { v.Push(2) }},
	}

	for _, step := range steps {
		step.op()
		want := slices.DeleteFunc(v.Snapshot(), func(n int) bool { return !even(n) })
		got, ok, err := w.Latest()
		if !ok || err != nil {
			t.Fatalf("%s: Latest() ok=%v err=%v", step.name, ok, err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("%s: filtered = %v, want %v (source %v)", step.name, got, want, v.Snapshot())
		}
	}
}

func TestFilterOverSignal(t *testing.T) {
	list := NewCell([]int{1, 2, 3, 4})
	evens := ToSignal(Filter(ToSignalVec(list.Signal()), func(n int) bool { return n%2 == 0 }))

	w := Watch(evens)
	defer w.Close()
	if got := next(t, w); !slices.Equal(got, []int{2, 4}) {
		t.Errorf("got %v, want [2 4]", got)
	}
	list.Set([]int{6, 7})
	if got := next(t, w); !slices.Equal(got, []int{6}) {
		t.Errorf("got %v, want [6]", got)
	}
}

func TestMapEachIncrementalSubscriptions(t *testing.T) {
	a, b, c := NewCell(1), NewCell(2), NewCell(3)
	v := NewVec(a, b)
	w := Watch(MapEach(v.SignalVec(), (*Cell[int]).Signal))
	defer w.Close()

	expect := func(want ...int) {
		t.Helper()
		if got := next(t, w); !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	expect(1, 2)

	b.Set(20)
	expect(1, 20)

	v.Push(c)
	expect(1, 20, 3)

	v.RemoveAt(0)
	expect(20, 3)
	if a.subs.len() != 0 {
		t.Errorf("removed element still has %d subscribers", a.subs.len())
	}
	a.Set(100)
	expectIdle(t, w)

	v.Move(1, 0)
	expect(3, 20)

	v.SetAt(0, a)
	expect(100, 20)
	if c.subs.len() != 0 {
		t.Errorf("replaced element still has %d subscribers", c.subs.len())
	}

	v.Clear()
	expect()
	if b.subs.len() != 0 {
		t.Errorf("cleared element still has %d subscribers", b.subs.len())
	}
}

func TestMapEachElementFailure(t *testing.T) {
	boom := errors.New("negative element")
	v := NewVec(1, 2)
	checked := MapEach(v.SignalVec(), func(n int) Signal[int] {
		if n < 0 {
			return Fail[int](boom)
		}
		return Const(n)
	})

	w := Watch(checked)
	defer w.Close()
	next(t, w)

	v.Push(-1)
	if err := nextErr(t, w); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestSumTracksMembershipAndValues(t *testing.T) {
	x, y, z := NewCell(1.5), NewCell(2.0), NewCell(4.0)
	v := NewVec(x, y)
	w := Watch(Sum(v.SignalVec(), (*Cell[float64]).Signal))
	defer w.Close()

	check := func(want float64) {
		t.Helper()
		if got := next(t, w); !approx(got, want) {
			t.Errorf("sum = %v, want %v", got, want)
		}
	}

	check(3.5)
	y.Set(3)
	check(4.5)
	v.Push(z)
	check(8.5)
	v.RemoveAt(0)
	check(7)
	x.Set(1000)
	expectIdle(t, w)
	v.Clear()
	check(0)
}

func TestSumEmptyIsZero(t *testing.T) {
	v := NewVec[*Cell[int]]()
	if got, err := Sample(Sum(v.SignalVec(), (*Cell[int]).Signal)); err != nil || got != 0 {
		t.Errorf("Sample(Sum(empty)) = %v, %v", got, err)
	}
}

func TestFlatten(t *testing.T) {
	got, err := Sample(Flatten(Const([][]string{{"a"}, nil, {"b", "c"}})))
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Flatten = %v", got)
	}
}
