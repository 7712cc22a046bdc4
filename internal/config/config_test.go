package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/signalgraph/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing should be disabled by default")
	}
	if len(cfg.Graph.Houses) != 1 || len(cfg.Graph.Rooms) != 2 || len(cfg.Graph.Windows) != 1 {
		t.Errorf("default graph = %+v", cfg.Graph)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if errors.CodeOf(err) != "G011" {
		t.Errorf("missing config err = %v, want G011", err)
	}

	configJSON := `{
  "server": {"host": "0.0.0.0", "port": 9090},
  "log": {"level": "debug"},
  "tracing": {"enabled": true},
  "graph": {
    "houses": [{"id": 7}],
    "rooms": [{"id": 1, "houseId": 7, "length": 3, "width": 4, "height": 2.5}]
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.TracerName != DefaultTracerName {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics should keep defaults, got %+v", cfg.Metrics)
	}
	if len(cfg.Graph.Houses) != 1 || cfg.Graph.Houses[0].ID != 7 {
		t.Errorf("Graph.Houses = %+v", cfg.Graph.Houses)
	}
	if len(cfg.Graph.Windows) != 0 {
		t.Errorf("graph section should replace the default graph, got windows %+v", cfg.Graph.Windows)
	}
	if cfg.Graph.Rooms[0].Height != 2.5 {
		t.Errorf("room height = %v", cfg.Graph.Rooms[0].Height)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "G010") {
		t.Errorf("Expected G010 error, got: %v", err)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Server.Port = 9000

	// Save should fail without configPath set
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	if !Exists(tmpDir) {
		t.Error("Exists() = false after SaveTo")
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", loaded.Server.Port)
	}
	if len(loaded.Graph.Rooms) != 2 {
		t.Errorf("round-tripped rooms = %+v", loaded.Graph.Rooms)
	}

	loaded.Log.Level = "warn"
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"level": "warn"`) {
		t.Errorf("saved file missing level:\n%s", data)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		detail string
	}{
		{"valid", func(*Config) {}, ""},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"duplicate house", func(c *Config) {
			c.Graph.Houses = append(c.Graph.Houses, HouseSeed{ID: 1})
		}, "duplicate house id 1"},
		{"duplicate room", func(c *Config) {
			c.Graph.Rooms = append(c.Graph.Rooms, RoomSeed{ID: 2, HouseID: 1})
		}, "duplicate room id 2"},
		{"unknown house", func(c *Config) { c.Graph.Rooms[1].HouseID = 9 }, "unknown house 9"},
		{"unknown room", func(c *Config) { c.Graph.Windows[0].RoomID = 9 }, "unknown room 9"},
		{"negative room", func(c *Config) { c.Graph.Rooms[0].Width = -1 }, "room 1 has a negative dimension"},
		{"negative window", func(c *Config) { c.Graph.Windows[0].Height = -0.1 }, "window 1 has a negative dimension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.detail == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if errors.CodeOf(err) != "G012" {
				t.Fatalf("Validate() = %v, want G012", err)
			}
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("Validate() = %v, want detail containing %q", err, tt.detail)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"trace", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}
