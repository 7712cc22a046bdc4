package building

import "github.com/vango-dev/signalgraph/pkg/reactive"

// House is the container entity.
type House struct {
	node

	rooms           *reactive.Field[[]*Room]
	windows         *reactive.Field[[]*Window]
	totalVolume     *reactive.Field[float64]
	totalWindowArea *reactive.Field[float64]
	totalSurface    *reactive.Field[float64]
}

// NewHouse creates a house and appends it to root.
func NewHouse(root *Root, id int) *House {
	h := &House{
		node:            newNode(root, "house", id),
		rooms:           reactive.NewField[[]*Room]("house.rooms"),
		windows:         reactive.NewField[[]*Window]("house.windows"),
		totalVolume:     reactive.NewField[float64]("house.total_volume"),
		totalWindowArea: reactive.NewField[float64]("house.total_window_area"),
		totalSurface:    reactive.NewField[float64]("house.total_surface"),
	}
	root.houses.Append(h)
	return h
}

func (h *House) roomVec(root *Root) reactive.SignalVec[*Room] {
	return root.rooms.ChildrenOf(h.id, (*Room).HouseID)
}

// Rooms returns the rooms of the house in creation order.
func (h *House) Rooms() reactive.Signal[[]*Room] {
	return derive(&h.node, h.rooms, func(root *Root) reactive.Signal[[]*Room] {
		return reactive.ToSignal(h.roomVec(root))
	})
}

// Windows returns the windows of every room of the house.
func (h *House) Windows() reactive.Signal[[]*Window] {
	return derive(&h.node, h.windows, func(root *Root) reactive.Signal[[]*Window] {
		return reactive.Flatten(reactive.MapEach(h.roomVec(root), (*Room).Windows))
	})
}

// TotalVolume is the sum of the volumes of the rooms.
func (h *House) TotalVolume() reactive.Signal[float64] {
	return derive(&h.node, h.totalVolume, func(root *Root) reactive.Signal[float64] {
		return reactive.Sum(h.roomVec(root), (*Room).Volume)
	})
}

// TotalWindowArea is the sum of the areas of every window in the house.
func (h *House) TotalWindowArea() reactive.Signal[float64] {
	return h.totalWindowArea.Get(func() reactive.Signal[float64] {
		return reactive.Sum(reactive.ToSignalVec(h.Windows()), (*Window).Area)
	})
}

// TotalSurface is the sum of the wall surfaces of the rooms.
func (h *House) TotalSurface() reactive.Signal[float64] {
	return derive(&h.node, h.totalSurface, func(root *Root) reactive.Signal[float64] {
		return reactive.Sum(h.roomVec(root), (*Room).Surface)
	})
}
