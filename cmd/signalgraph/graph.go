package main

import (
	"github.com/vango-dev/signalgraph/internal/config"
	"github.com/vango-dev/signalgraph/pkg/building"
)

// buildGraph creates the entities of a validated graph config. Parents are
// created before their children.
func buildGraph(g config.GraphConfig) *building.Root {
	root := building.NewRoot()
	for _, h := range g.Houses {
		building.NewHouse(root, h.ID)
	}
	for _, r := range g.Rooms {
		building.NewRoom(root, r.ID, r.HouseID, r.Length, r.Width, r.Height)
	}
	for _, w := range g.Windows {
		building.NewWindow(root, w.ID, w.RoomID, w.Width, w.Height)
	}
	return root
}

// loadConfig reads signalgraph.json from dir, falling back to defaults
// when there is none.
func loadConfig(dir string) (*config.Config, error) {
	if !config.Exists(dir) {
		return config.New(), nil
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
