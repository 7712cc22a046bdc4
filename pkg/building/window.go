package building

import "github.com/vango-dev/signalgraph/pkg/reactive"

// Window is a sub-item of a room.
type Window struct {
	node
	roomID int

	width  *reactive.Cell[float64]
	height *reactive.Cell[float64]

	area *reactive.Field[float64]
	room *reactive.Field[*Room]
}

// NewWindow creates a window of room roomID and appends it to root.
func NewWindow(root *Root, id, roomID int, width, height float64) *Window {
	w := &Window{
		node:   newNode(root, "window", id),
		roomID: roomID,
		width:  reactive.NewCell(width),
		height: reactive.NewCell(height),
		area:   reactive.NewField[float64]("window.area"),
		room:   reactive.NewField[*Room]("window.room"),
	}
	root.windows.Append(w)
	return w
}

// RoomID returns the id of the room the window belongs to.
func (w *Window) RoomID() int { return w.roomID }

// Dimensions returns the current raw dimensions.
func (w *Window) Dimensions() (width, height float64) {
	return w.width.Get(), w.height.Get()
}

func (w *Window) Width() reactive.Signal[float64]  { return w.width.Signal() }
func (w *Window) Height() reactive.Signal[float64] { return w.height.Signal() }

func (w *Window) SetWidth(v float64)  { w.width.Set(v) }
func (w *Window) SetHeight(v float64) { w.height.Set(v) }

// Area is width × height.
func (w *Window) Area() reactive.Signal[float64] {
	return w.area.Get(func() reactive.Signal[float64] {
		return reactive.Combine2(w.Width(), w.Height(), func(width, height float64) float64 {
			return width * height
		})
	})
}

// Room resolves the parent room.
func (w *Window) Room() reactive.Signal[*Room] {
	return derive(&w.node, w.room, func(root *Root) reactive.Signal[*Room] {
		return root.rooms.ByID(w.roomID)
	})
}
