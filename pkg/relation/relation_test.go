package relation

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vango-dev/signalgraph/pkg/reactive"
)

type item struct {
	id       int
	parentID int
}

func itemID(i item) int     { return i.id }
func itemParent(i item) int { return i.parentID }

func ids(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func nextValue[T any](t *testing.T, w *reactive.Watcher[T]) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return w.Next(ctx)
}

func TestIndexAppendAndFind(t *testing.T) {
	x := NewIndex("item", itemID)
	x.Append(item{id: 1})
	x.Append(item{id: 2})

	if x.Len() != 2 || x.Kind() != "item" {
		t.Errorf("Len() = %d, Kind() = %q", x.Len(), x.Kind())
	}
	if got := ids(x.Snapshot()); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Snapshot() ids = %v", got)
	}
	if it, ok := x.Find(2); !ok || it.id != 2 {
		t.Errorf("Find(2) = %v, %v", it, ok)
	}
	if _, ok := x.Find(3); ok {
		t.Error("Find(3) should miss")
	}
}

func TestChildrenOfFollowsAppends(t *testing.T) {
	x := NewIndex("item", itemID)
	x.Append(item{id: 1, parentID: 10})
	x.Append(item{id: 2, parentID: 20})

	w := reactive.Watch(reactive.ToSignal(x.ChildrenOf(10, itemParent)))
	defer w.Close()

	got, err := nextValue(t, w)
	if err != nil || !slices.Equal(ids(got), []int{1}) {
		t.Fatalf("children = %v, %v", got, err)
	}

	x.Append(item{id: 3, parentID: 20})
	if w.Pending() {
		t.Error("unrelated append should not notify")
	}

	x.Append(item{id: 4, parentID: 10})
	got, err = nextValue(t, w)
	if err != nil || !slices.Equal(ids(got), []int{1, 4}) {
		t.Errorf("children = %v, %v", ids(got), err)
	}
}

func TestByID(t *testing.T) {
	x := NewIndex("item", itemID)
	x.Append(item{id: 1, parentID: 5})

	got, err := reactive.Sample(x.ByID(1))
	if err != nil || got.parentID != 5 {
		t.Errorf("ByID(1) = %v, %v", got, err)
	}
}

func TestByIDMissing(t *testing.T) {
	x := NewIndex("item", itemID)
	x.Append(item{id: 1})

	_, err := reactive.Sample(x.ByID(99))
	if !errors.Is(err, ErrMissingRelation) {
		t.Fatalf("err = %v, want ErrMissingRelation", err)
	}
	if errors.Is(err, ErrMultiplicity) {
		t.Error("missing relation should not match ErrMultiplicity")
	}
}

func TestByIDMultiplicity(t *testing.T) {
	x := NewIndex("item", itemID)
	x.Append(item{id: 1, parentID: 1})
	w := reactive.Watch(x.ByID(1))
	defer w.Close()
	if _, err := nextValue(t, w); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	x.Append(item{id: 1, parentID: 2})
	if _, err := nextValue(t, w); !errors.Is(err, ErrMultiplicity) {
		t.Errorf("err = %v, want ErrMultiplicity", err)
	}
}

func TestFailureIsLocalToChain(t *testing.T) {
	x := NewIndex("item", itemID)
	x.Append(item{id: 1})

	broken := reactive.Watch(x.ByID(7))
	defer broken.Close()
	healthy := reactive.Watch(reactive.ToSignal(x.SignalVec()))
	defer healthy.Close()

	if _, err := nextValue(t, broken); !errors.Is(err, ErrMissingRelation) {
		t.Errorf("err = %v", err)
	}
	nextValue(t, healthy)

	x.Append(item{id: 2})
	got, err := nextValue(t, healthy)
	if err != nil || len(got) != 2 {
		t.Errorf("healthy chain = %v, %v", got, err)
	}
}
