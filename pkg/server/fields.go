package server

import (
	"fmt"
	"math"
	"slices"

	"github.com/vango-dev/signalgraph/internal/errors"
	"github.com/vango-dev/signalgraph/pkg/building"
	"github.com/vango-dev/signalgraph/pkg/reactive"
)

// resolver exposes one entity kind to the API.
type resolver interface {
	snapshot(root *building.Root, id int) (any, error)
	field(root *building.Root, id int, name string) (reactive.Signal[any], error)
	fieldNames() []string
}

type entityKind[E any] struct {
	name   string
	find   func(*building.Root, int) (E, bool)
	view   func(E) any
	fields map[string]func(E) reactive.Signal[any]
}

func (k entityKind[E]) lookup(root *building.Root, id int) (E, error) {
	e, ok := k.find(root, id)
	if !ok {
		return e, errors.New("G020").WithDetail(fmt.Sprintf("%s %d", k.name, id))
	}
	return e, nil
}

func (k entityKind[E]) snapshot(root *building.Root, id int) (any, error) {
	e, err := k.lookup(root, id)
	if err != nil {
		return nil, err
	}
	return k.view(e), nil
}

func (k entityKind[E]) field(root *building.Root, id int, name string) (reactive.Signal[any], error) {
	e, err := k.lookup(root, id)
	if err != nil {
		return nil, err
	}
	f, ok := k.fields[name]
	if !ok {
		return nil, errors.New("G021").
			WithDetail(fmt.Sprintf("%s has no field %q", k.name, name)).
			WithSuggestion(fmt.Sprintf("Known fields: %v", k.fieldNames()))
	}
	return f(e), nil
}

func (k entityKind[E]) fieldNames() []string {
	names := make([]string, 0, len(k.fields))
	for name := range k.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// kinds maps the URL segment of each kind to its resolver.
var kinds = map[string]resolver{
	"houses": entityKind[*building.House]{
		name: "house",
		find: (*building.Root).House,
		view: viewHouse,
		fields: map[string]func(*building.House) reactive.Signal[any]{
			"rooms":           idsField((*building.House).Rooms),
			"windows":         idsField((*building.House).Windows),
			"totalVolume":     floatField((*building.House).TotalVolume),
			"totalWindowArea": floatField((*building.House).TotalWindowArea),
			"totalSurface":    floatField((*building.House).TotalSurface),
		},
	},
	"rooms": entityKind[*building.Room]{
		name: "room",
		find: (*building.Root).Room,
		view: viewRoom,
		fields: map[string]func(*building.Room) reactive.Signal[any]{
			"length":             floatField((*building.Room).Length),
			"width":              floatField((*building.Room).Width),
			"height":             floatField((*building.Room).Height),
			"house":              idField((*building.Room).House),
			"windows":            idsField((*building.Room).Windows),
			"volume":             floatField((*building.Room).Volume),
			"volumePercentage":   floatField((*building.Room).VolumePercentage),
			"totalWindowSurface": floatField((*building.Room).TotalWindowSurface),
			"surface":            floatField((*building.Room).Surface),
		},
	},
	"windows": entityKind[*building.Window]{
		name: "window",
		find: (*building.Root).Window,
		view: viewWindow,
		fields: map[string]func(*building.Window) reactive.Signal[any]{
			"width":  floatField((*building.Window).Width),
			"height": floatField((*building.Window).Height),
			"area":   floatField((*building.Window).Area),
			"room":   idField((*building.Window).Room),
		},
	},
}

type identified interface {
	ID() int
}

func floatField[E any](f func(E) reactive.Signal[float64]) func(E) reactive.Signal[any] {
	return func(e E) reactive.Signal[any] {
		return reactive.Map(f(e), number)
	}
}

func idField[E any, P identified](f func(E) reactive.Signal[P]) func(E) reactive.Signal[any] {
	return func(e E) reactive.Signal[any] {
		return reactive.Map(f(e), func(p P) any { return p.ID() })
	}
}

func idsField[E any, C identified](f func(E) reactive.Signal[[]C]) func(E) reactive.Signal[any] {
	return func(e E) reactive.Signal[any] {
		return reactive.Map(f(e), func(children []C) any {
			ids := make([]int, len(children))
			for i, c := range children {
				ids[i] = c.ID()
			}
			return ids
		})
	}
}

// number maps values JSON cannot carry (NaN, ±Inf) to null.
func number(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

type houseView struct {
	ID int `json:"id"`
}

type roomView struct {
	ID      int     `json:"id"`
	HouseID int     `json:"houseId"`
	Length  float64 `json:"length"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

type windowView struct {
	ID     int     `json:"id"`
	RoomID int     `json:"roomId"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func viewHouse(h *building.House) any {
	return houseView{ID: h.ID()}
}

func viewRoom(r *building.Room) any {
	l, w, h := r.Dimensions()
	return roomView{ID: r.ID(), HouseID: r.HouseID(), Length: l, Width: w, Height: h}
}

func viewWindow(w *building.Window) any {
	width, height := w.Dimensions()
	return windowView{ID: w.ID(), RoomID: w.RoomID(), Width: width, Height: height}
}
