package reactive

import "slices"

// subscriber is one registered callback. cancelled is checked before every
// delivery so a callback removed mid-notification is never called again.
type subscriber[E any] struct {
	emit      func(E, error)
	cancelled bool
}

// subscribers is an ordered subscriber list. It is only touched with the
// propagation lock held, so it carries no mutex of its own.
type subscribers[E any] struct {
	list []*subscriber[E]
}

// add registers emit and returns the function that removes it.
func (s *subscribers[E]) add(emit func(E, error)) func() {
	sub := &subscriber[E]{emit: emit}
	s.list = append(s.list, sub)
	return func() { s.remove(sub) }
}

func (s *subscribers[E]) remove(sub *subscriber[E]) {
	if sub.cancelled {
		return
	}
	sub.cancelled = true
	if i := slices.Index(s.list, sub); i >= 0 {
		s.list = slices.Delete(s.list, i, i+1)
	}
}

// emit delivers to a copy of the list so callbacks may subscribe or
// unsubscribe while it runs.
func (s *subscribers[E]) emit(v E, err error) {
	list := slices.Clone(s.list)
	for _, sub := range list {
		if !sub.cancelled {
			sub.emit(v, err)
		}
	}
}

func (s *subscribers[E]) len() int {
	return len(s.list)
}
