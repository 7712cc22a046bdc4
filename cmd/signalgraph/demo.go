package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/vango-dev/signalgraph/internal/config"
	"github.com/vango-dev/signalgraph/pkg/observe"
	"github.com/vango-dev/signalgraph/pkg/reactive"
)

func demoCmd(logLevel *string) *cobra.Command {
	var height float64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the example graph and show which values change",
		Long: `Build the example graph (one house, two rooms, a window in room 1),
watch every room surface and the house totals, then change the
window height and print the values that were recomputed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := resolveLevel(*logLevel, config.New())
			if err != nil {
				return err
			}
			observe.Install(observe.NewLogging(newLogger(os.Stderr, level)))
			defer observe.Install()
			return runDemo(context.Background(), os.Stdout, height)
		},
	}

	cmd.Flags().Float64Var(&height, "height", 0.4, "New height of window 1")

	return cmd
}

type watched struct {
	name    string
	watcher *reactive.Watcher[float64]
}

func runDemo(ctx context.Context, out io.Writer, height float64) error {
	root := buildGraph(config.New().Graph)
	house, _ := root.House(1)
	window, _ := root.Window(1)

	targets := []watched{
		{"house 1 total volume", reactive.Watch(house.TotalVolume())},
		{"house 1 window area", reactive.Watch(house.TotalWindowArea())},
	}
	for _, room := range root.Rooms().Snapshot() {
		targets = append(targets, watched{fmt.Sprintf("room %d surface", room.ID()), reactive.Watch(room.Surface())})
	}
	defer func() {
		for _, t := range targets {
			t.watcher.Close()
		}
	}()

	for _, t := range targets {
		v, err := next(ctx, t.watcher)
		if err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
		fmt.Fprintf(out, "  %-22s %.4f\n", t.name, v)
	}

	fmt.Fprintln(out)
	_, oldHeight := window.Dimensions()
	fmt.Fprintf(out, "window 1 height %.2f -> %.2f\n", oldHeight, height)
	window.SetHeight(height)

	for _, t := range targets {
		if !t.watcher.Pending() {
			fmt.Fprintf(out, "  %-22s unchanged\n", t.name)
			continue
		}
		v, err := next(ctx, t.watcher)
		if err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
		fmt.Fprintf(out, "  %-22s %.4f\n", t.name, v)
	}
	runtime.KeepAlive(root)
	return nil
}

func next(ctx context.Context, w *reactive.Watcher[float64]) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return w.Next(ctx)
}
