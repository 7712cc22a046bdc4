// Package relation provides shared, observable per-kind entity indexes and
// the relational lookups built on them.
//
// An Index is the single collection of every entity of one kind. Entities
// refer to each other by integer id: a child stores its parent's id as a
// foreign key, and both directions of the relation are derived from the
// indexes rather than stored as pointers.
package relation

import (
	"fmt"

	"github.com/vango-dev/signalgraph/internal/errors"
	"github.com/vango-dev/signalgraph/pkg/reactive"
)

var (
	// ErrMissingRelation matches lookups that found no entity.
	ErrMissingRelation = errors.New("G001")

	// ErrMultiplicity matches lookups that found more than one entity.
	ErrMultiplicity = errors.New("G002")
)

// Index is the shared, append-only collection of the entities of one kind.
// It is safe for concurrent use.
type Index[E any] struct {
	kind string
	id   func(E) int
	vec  *reactive.Vec[E]
}

// NewIndex creates an empty index. kind names the entity kind in errors;
// id extracts an entity's identity.
func NewIndex[E any](kind string, id func(E) int) *Index[E] {
	return &Index[E]{
		kind: kind,
		id:   id,
		vec:  reactive.NewVec[E](),
	}
}

// Kind returns the entity kind name.
func (x *Index[E]) Kind() string {
	return x.kind
}

// Append adds e. Every current and future subscriber of a signal derived
// from the index sees it.
func (x *Index[E]) Append(e E) {
	x.vec.Push(e)
}

// Len returns the number of entities.
func (x *Index[E]) Len() int {
	return x.vec.Len()
}

// Snapshot returns the entities in insertion order.
func (x *Index[E]) Snapshot() []E {
	return x.vec.Snapshot()
}

// SignalVec returns the whole index as a dynamic collection.
func (x *Index[E]) SignalVec() reactive.SignalVec[E] {
	return x.vec.SignalVec()
}

// Find returns the first entity with the given id without subscribing.
func (x *Index[E]) Find(id int) (E, bool) {
	for _, e := range x.vec.Snapshot() {
		if x.id(e) == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Where returns the entities satisfying pred, kept up to date as the index
// grows.
func (x *Index[E]) Where(pred func(E) bool) reactive.SignalVec[E] {
	return reactive.Filter(x.vec.SignalVec(), pred)
}

// ChildrenOf returns the entities whose foreign key fk equals parentID.
func (x *Index[E]) ChildrenOf(parentID int, fk func(E) int) reactive.SignalVec[E] {
	return x.Where(func(e E) bool { return fk(e) == parentID })
}

// ByID resolves the single entity with the given id. The signal fails
// with ErrMissingRelation if no entity matches and with ErrMultiplicity
// if more than one does. Either failure is terminal.
func (x *Index[E]) ByID(id int) reactive.Signal[E] {
	matches := reactive.ToSignal(x.Where(func(e E) bool { return x.id(e) == id }))
	return reactive.TryMap(matches, func(found []E) (E, error) {
		return exactlyOne(x.kind, id, found)
	})
}

func exactlyOne[E any](kind string, id int, found []E) (E, error) {
	var zero E
	switch len(found) {
	case 0:
		return zero, errors.New("G001").WithDetail(fmt.Sprintf("no %s with id %d", kind, id))
	case 1:
		return found[0], nil
	}
	return zero, errors.New("G002").WithDetail(fmt.Sprintf("%d %ss with id %d", len(found), kind, id))
}
