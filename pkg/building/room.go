package building

import "github.com/vango-dev/signalgraph/pkg/reactive"

// Room is an item of a house.
type Room struct {
	node
	houseID int

	length *reactive.Cell[float64]
	width  *reactive.Cell[float64]
	height *reactive.Cell[float64]

	house              *reactive.Field[*House]
	windows            *reactive.Field[[]*Window]
	volume             *reactive.Field[float64]
	volumePercentage   *reactive.Field[float64]
	totalWindowSurface *reactive.Field[float64]
	surface            *reactive.Field[float64]
}

// NewRoom creates a room of house houseID and appends it to root. The
// house does not have to exist yet.
func NewRoom(root *Root, id, houseID int, length, width, height float64) *Room {
	r := &Room{
		node:               newNode(root, "room", id),
		houseID:            houseID,
		length:             reactive.NewCell(length),
		width:              reactive.NewCell(width),
		height:             reactive.NewCell(height),
		house:              reactive.NewField[*House]("room.house"),
		windows:            reactive.NewField[[]*Window]("room.windows"),
		volume:             reactive.NewField[float64]("room.volume"),
		volumePercentage:   reactive.NewField[float64]("room.volume_percentage"),
		totalWindowSurface: reactive.NewField[float64]("room.total_window_surface"),
		surface:            reactive.NewField[float64]("room.surface"),
	}
	root.rooms.Append(r)
	return r
}

// HouseID returns the id of the house the room belongs to.
func (r *Room) HouseID() int { return r.houseID }

// Dimensions returns the current raw dimensions.
func (r *Room) Dimensions() (length, width, height float64) {
	return r.length.Get(), r.width.Get(), r.height.Get()
}

func (r *Room) Length() reactive.Signal[float64] { return r.length.Signal() }
func (r *Room) Width() reactive.Signal[float64]  { return r.width.Signal() }
func (r *Room) Height() reactive.Signal[float64] { return r.height.Signal() }

func (r *Room) SetLength(v float64) { r.length.Set(v) }
func (r *Room) SetWidth(v float64)  { r.width.Set(v) }
func (r *Room) SetHeight(v float64) { r.height.Set(v) }

// House resolves the parent house. It fails with a missing relation error
// if no house with the room's house id exists when it is first observed.
func (r *Room) House() reactive.Signal[*House] {
	return derive(&r.node, r.house, func(root *Root) reactive.Signal[*House] {
		return root.houses.ByID(r.houseID)
	})
}

// Windows returns the windows of the room in creation order.
func (r *Room) Windows() reactive.Signal[[]*Window] {
	return derive(&r.node, r.windows, func(root *Root) reactive.Signal[[]*Window] {
		return reactive.ToSignal(root.windows.ChildrenOf(r.id, (*Window).RoomID))
	})
}

// Volume is length × width × height.
func (r *Room) Volume() reactive.Signal[float64] {
	return r.volume.Get(func() reactive.Signal[float64] {
		return reactive.Combine3(r.Length(), r.Width(), r.Height(), func(l, w, h float64) float64 {
			return l * w * h
		})
	})
}

// VolumePercentage is the share of the house's total volume taken by this
// room, as a ratio. A house with zero total volume yields NaN.
func (r *Room) VolumePercentage() reactive.Signal[float64] {
	return r.volumePercentage.Get(func() reactive.Signal[float64] {
		total := reactive.Switch(r.House(), (*House).TotalVolume)
		return reactive.Combine2(r.Volume(), total, func(v, total float64) float64 {
			return v / total
		})
	})
}

// TotalWindowSurface is the sum of the areas of the room's windows.
func (r *Room) TotalWindowSurface() reactive.Signal[float64] {
	return derive(&r.node, r.totalWindowSurface, func(root *Root) reactive.Signal[float64] {
		return reactive.Sum(root.windows.ChildrenOf(r.id, (*Window).RoomID), (*Window).Area)
	})
}

// Surface is the wall, floor and ceiling surface of the room minus the
// surface of its windows.
func (r *Room) Surface() reactive.Signal[float64] {
	return r.surface.Get(func() reactive.Signal[float64] {
		return reactive.Combine4(r.Length(), r.Width(), r.Height(), r.TotalWindowSurface(),
			func(l, w, h, windows float64) float64 {
				return 2*h*l + 2*h*w + 2*w*l - windows
			})
	})
}
