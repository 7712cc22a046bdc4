package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/signalgraph/internal/config"
	"github.com/vango-dev/signalgraph/internal/errors"
)

func TestBuildGraph(t *testing.T) {
	root := buildGraph(config.New().Graph)

	if got := root.Houses().Len(); got != 1 {
		t.Errorf("houses = %d, want 1", got)
	}
	if got := root.Rooms().Len(); got != 2 {
		t.Errorf("rooms = %d, want 2", got)
	}
	window, ok := root.Window(1)
	if !ok || window.RoomID() != 1 {
		t.Fatalf("window 1 = %v, %v", window, ok)
	}
	if w, h := window.Dimensions(); w != 0.2 || h != 0.2 {
		t.Errorf("window dimensions = %v x %v", w, h)
	}
}

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	if err := runDemo(context.Background(), &out, 0.4); err != nil {
		t.Fatalf("runDemo() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"room 1 surface         9.9600",
		"window 1 height 0.20 -> 0.40",
		"room 1 surface         9.9200",
		"room 2 surface         unchanged",
		"house 1 total volume   unchanged",
		"house 1 window area    0.0800",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	if err := runInit(dir, false); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}
	cfg, err := config.LoadFile(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(cfg.Graph.Rooms) != 2 {
		t.Errorf("rooms = %d, want 2", len(cfg.Graph.Rooms))
	}

	err = runInit(dir, false)
	if errors.CodeOf(err) != "G010" {
		t.Errorf("second init error = %v, want G010", err)
	}
	if err := runInit(dir, true); err != nil {
		t.Errorf("forced init error = %v", err)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, config.DefaultPort)
	}
}

func TestLoadConfigValidates(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Graph.Windows = append(cfg.Graph.Windows, config.WindowSeed{ID: 2, RoomID: 42})
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(dir); errors.CodeOf(err) != "G012" {
		t.Errorf("loadConfig() error = %v, want G012", err)
	}
}

func TestLoggerRenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Warn("failed", "error", io.EOF)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug record written at info level: %s", got)
	}
	if !strings.Contains(got, "err=EOF") {
		t.Errorf("output = %q, want err=EOF", got)
	}
}

func TestResolveLevel(t *testing.T) {
	cfg := config.New()
	cfg.Log.Level = "warn"

	if level, _ := resolveLevel("", cfg); level != slog.LevelWarn {
		t.Errorf("level from config = %v, want warn", level)
	}
	if level, _ := resolveLevel("debug", cfg); level != slog.LevelDebug {
		t.Errorf("level from flag = %v, want debug", level)
	}
	if _, err := resolveLevel("loud", cfg); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestRunServeStopsOnCancel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	cfg := config.New()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Metrics.Enabled = true
	cfg.Tracing.Enabled = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := runServe(ctx, cfg, logger, 0); err != nil {
		t.Errorf("runServe() error = %v", err)
	}
}
