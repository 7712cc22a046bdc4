package reactive

import (
	"errors"
	"testing"
)

var errDone = errors.New("done")

func TestMap(t *testing.T) {
	calls := 0
	c := NewCell(3)
	sq := Map(c.Signal(), func(n int) int {
		calls++
		return n * n
	})

	w := Watch(sq)
	defer w.Close()
	if got := next(t, w); got != 9 {
		t.Errorf("got %d, want 9", got)
	}

	c.Set(4)
	if got := next(t, w); got != 16 {
		t.Errorf("got %d, want 16", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 computations, got %d", calls)
	}
}

func TestTryMapFailureIsTerminal(t *testing.T) {
	boom := errors.New("negative")
	c := NewCell(1)
	checked := TryMap(c.Signal(), func(n int) (int, error) {
		if n < 0 {
			return 0, boom
		}
		return n, nil
	})

	w := Watch(checked)
	defer w.Close()
	next(t, w)

	c.Set(-1)
	if err := nextErr(t, w); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}

	// The chain stays failed.
	c.Set(5)
	if err := nextErr(t, w); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if c.subs.len() != 0 {
		t.Errorf("failed chain should be unsubscribed, %d subscribers left", c.subs.len())
	}
}

func TestConstAndFail(t *testing.T) {
	if v, err := Sample(Const(7)); err != nil || v != 7 {
		t.Errorf("Sample(Const(7)) = %v, %v", v, err)
	}

	boom := errors.New("boom")
	if _, err := Sample(Fail[int](boom)); !errors.Is(err, boom) {
		t.Errorf("Sample(Fail) err = %v, want %v", err, boom)
	}
}

func TestCombine3(t *testing.T) {
	l, w, h := NewCell(1.0), NewCell(2.0), NewCell(3.0)
	volume := Combine3(l.Signal(), w.Signal(), h.Signal(), func(l, w, h float64) float64 {
		return l * w * h
	})

	watcher := Watch(volume)
	defer watcher.Close()
	if got := next(t, watcher); got != 6 {
		t.Errorf("got %v, want 6", got)
	}

	// Unchanged inputs keep their latest value.
	h.Set(10)
	if got := next(t, watcher); got != 20 {
		t.Errorf("got %v, want 20", got)
	}
	l.Set(2)
	if got := next(t, watcher); got != 40 {
		t.Errorf("got %v, want 40", got)
	}
}

func TestCombineWaitsForEveryInput(t *testing.T) {
	ready := NewCell(false)
	late := NewCell(5)
	gated := Switch(ready.Signal(), func(ok bool) Signal[int] {
		if !ok {
			return never[int]()
		}
		return late.Signal()
	})

	calls := 0
	sum := Combine2(NewCell(1).Signal(), gated, func(a, b int) int {
		calls++
		return a + b
	})

	w := Watch(sum)
	defer w.Close()
	expectIdle(t, w)
	if calls != 0 {
		t.Errorf("combine ran %d times before every input had a value", calls)
	}

	ready.Set(true)
	if got := next(t, w); got != 6 {
		t.Errorf("got %d, want 6", got)
	}
}

func TestCombineAll(t *testing.T) {
	cells := []*Cell[int]{NewCell(1), NewCell(2), NewCell(3)}
	sigs := make([]Signal[int], len(cells))
	for i, c := range cells {
		sigs[i] = c.Signal()
	}
	total := CombineAll(sigs, func(vs []int) int { return sumOf(vs) })

	w := Watch(total)
	defer w.Close()
	if got := next(t, w); got != 6 {
		t.Errorf("got %d, want 6", got)
	}
	cells[1].Set(20)
	if got := next(t, w); got != 24 {
		t.Errorf("got %d, want 24", got)
	}

	if v, err := Sample(CombineAll(nil, func(vs []int) int { return len(vs) })); err != nil || v != 0 {
		t.Errorf("empty CombineAll = %v, %v", v, err)
	}
}

func TestCombinePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	a := NewCell(1)
	joined := Combine2(a.Signal(), Fail[int](boom), func(x, y int) int { return x + y })

	if _, err := Sample(joined); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if a.subs.len() != 0 {
		t.Errorf("inputs should be released after failure, %d left", a.subs.len())
	}
}

func TestCombineNilInterfaceValues(t *testing.T) {
	var none error
	errs := NewCell(none)
	name := NewCell("x")
	desc := Combine2(errs.Signal(), name.Signal(), func(err error, n string) string {
		if err != nil {
			return n + ": " + err.Error()
		}
		return n + ": ok"
	})
	if v, err := Sample(desc); err != nil || v != "x: ok" {
		t.Errorf("Sample = %q, %v", v, err)
	}
}

func TestSwitchFollowsSelectedSignal(t *testing.T) {
	a, b := NewCell(1), NewCell(100)
	selected := NewCell(0)
	follow := Switch(selected.Signal(), func(i int) Signal[int] {
		return []*Cell[int]{a, b}[i].Signal()
	})

	w := Watch(follow)
	defer w.Close()
	if got := next(t, w); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	a.Set(2)
	if got := next(t, w); got != 2 {
		t.Errorf("got %d, want 2", got)
	}

	selected.Set(1)
	if got := next(t, w); got != 100 {
		t.Errorf("after switch got %d, want 100", got)
	}
	if a.subs.len() != 0 {
		t.Errorf("previous target still has %d subscribers", a.subs.len())
	}

	a.Set(3)
	expectIdle(t, w)

	b.Set(101)
	if got := next(t, w); got != 101 {
		t.Errorf("got %d, want 101", got)
	}
}

func TestSwitchInnerErrorIsTerminal(t *testing.T) {
	boom := errors.New("boom")
	selected := NewCell(false)
	follow := Switch(selected.Signal(), func(fail bool) Signal[int] {
		if fail {
			return Fail[int](boom)
		}
		return Const(1)
	})

	w := Watch(follow)
	defer w.Close()
	next(t, w)

	selected.Set(true)
	if err := nextErr(t, w); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	selected.Set(false)
	if err := nextErr(t, w); !errors.Is(err, boom) {
		t.Errorf("switch should stay failed, got %v", err)
	}
}
