// Package reactive provides the push-based propagation engine behind
// signalgraph.
//
// The engine is built from three kinds of values:
//
//   - Cell[T] is a mutable leaf. Writing it is the only way change enters
//     the graph.
//   - Signal[T] is a cold description of "the current value, then every
//     future change". Combinators (Map, Combine2, Switch, Sum, ...) build
//     new signals from existing ones without copying state.
//   - Field[T] memoizes a signal: the builder runs once and the result is
//     shared through a Broadcaster by every later subscriber.
//
// Dynamic collections are modelled by Vec[T] and SignalVec[T], which
// exchange incremental VecDiff values instead of whole slices:
//
//	rooms := reactive.NewVec[*Room]()
//	big := reactive.Filter(rooms.SignalVec(), func(r *Room) bool { return r.Big })
//	total := reactive.Sum(big, (*Room).Volume)
//
// # Observation
//
// Host code observes a signal through a Watcher:
//
//	w := reactive.Watch(total)
//	defer w.Close()
//	for {
//	    v, err := w.Next(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println("total:", v)
//	}
//
// # Concurrency
//
// Every mutation (Cell.Set, Vec.Push, ...) and every subscription change
// (Watch, Watcher.Close) runs under a single propagation lock, and the
// change is pushed synchronously through the graph before the call
// returns. Watchers stage the values they receive and publish them only
// once the propagation has settled, so a subscriber never sees an
// intermediate value. Reading (Cell.Get, Watcher.Next, Watcher.Latest)
// never takes the propagation lock.
//
// Functions passed to combinators must be pure: they run while the
// propagation lock is held and must not write cells or call Watch.
package reactive
