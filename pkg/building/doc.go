// Package building is a concrete entity graph on top of the reactive
// engine: houses contain rooms, rooms contain windows.
//
// Entities are created against a Root, which owns one relation.Index per
// kind. Children store the id of their parent, and every relation is
// derived from the indexes, so entities never hold owning pointers to each
// other. Each entity keeps only a weak reference to its Root; once the
// Root has been garbage collected, derived fields that have not been built
// yet fail with ErrRootReleased.
//
// Raw dimensions are reactive cells with setters. Everything else is a
// memoized field built on first access and shared by every subscriber:
//
//	root := building.NewRoot()
//	house := building.NewHouse(root, 1)
//	room := building.NewRoom(root, 1, house.ID(), 4, 3, 2.5)
//	building.NewWindow(root, 1, room.ID(), 1.2, 1)
//
//	w := reactive.Watch(room.Surface())
//	defer w.Close()
//	surface, _ := w.Next(ctx)
package building
