package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/signalgraph/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "signalgraph.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "signalgraph"

	// DefaultMetricsPath is the default metrics endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "signalgraph"
)

// Config represents the complete signalgraph.json configuration.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server"`

	// Log contains logging configuration.
	Log LogConfig `json:"log"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing"`

	// Graph is the entity graph built at startup.
	Graph GraphConfig `json:"graph"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers the engine metrics and serves them.
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`

	// Path is the URL path of the metrics endpoint.
	Path string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled reports engine spans to the global tracer provider.
	Enabled bool `json:"enabled"`

	// TracerName is the name of the tracer.
	TracerName string `json:"tracerName,omitempty"`
}

// GraphConfig holds the seed entities.
type GraphConfig struct {
	Houses  []HouseSeed  `json:"houses,omitempty"`
	Rooms   []RoomSeed   `json:"rooms,omitempty"`
	Windows []WindowSeed `json:"windows,omitempty"`
}

// HouseSeed describes a house.
type HouseSeed struct {
	ID int `json:"id"`
}

// RoomSeed describes a room of a house.
type RoomSeed struct {
	ID      int     `json:"id"`
	HouseID int     `json:"houseId"`
	Length  float64 `json:"length"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// WindowSeed describes a window of a room.
type WindowSeed struct {
	ID     int     `json:"id"`
	RoomID int     `json:"roomId"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// New creates a new Config with default values. The default graph is one
// house with two rooms and a window.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultMetricsNamespace,
			Path:      DefaultMetricsPath,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Graph: GraphConfig{
			Houses: []HouseSeed{{ID: 1}},
			Rooms: []RoomSeed{
				{ID: 1, HouseID: 1, Length: 1, Width: 1, Height: 2},
				{ID: 2, HouseID: 1, Length: 1, Width: 1, Height: 1},
			},
			Windows: []WindowSeed{
				{ID: 1, RoomID: 1, Width: 0.2, Height: 0.2},
			},
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for signalgraph.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Sections
// missing from the file keep their defaults; a graph section replaces the
// default graph entirely.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("G011").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'signalgraph init' to create one")
		}
		return nil, errors.New("G010").Wrap(err)
	}

	cfg := New()
	cfg.Graph = GraphConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("G010").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("G010").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("G010").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port must be between 0 and 65535")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return invalid(err.Error())
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path must start with /")
	}
	return c.Graph.validate()
}

func (g GraphConfig) validate() error {
	houses := make(map[int]bool, len(g.Houses))
	for _, h := range g.Houses {
		if houses[h.ID] {
			return invalid(fmt.Sprintf("duplicate house id %d", h.ID))
		}
		houses[h.ID] = true
	}

	rooms := make(map[int]bool, len(g.Rooms))
	for _, r := range g.Rooms {
		if rooms[r.ID] {
			return invalid(fmt.Sprintf("duplicate room id %d", r.ID))
		}
		rooms[r.ID] = true
		if !houses[r.HouseID] {
			return invalid(fmt.Sprintf("room %d references unknown house %d", r.ID, r.HouseID))
		}
		if r.Length < 0 || r.Width < 0 || r.Height < 0 {
			return invalid(fmt.Sprintf("room %d has a negative dimension", r.ID))
		}
	}

	windows := make(map[int]bool, len(g.Windows))
	for _, w := range g.Windows {
		if windows[w.ID] {
			return invalid(fmt.Sprintf("duplicate window id %d", w.ID))
		}
		windows[w.ID] = true
		if !rooms[w.RoomID] {
			return invalid(fmt.Sprintf("window %d references unknown room %d", w.ID, w.RoomID))
		}
		if w.Width < 0 || w.Height < 0 {
			return invalid(fmt.Sprintf("window %d has a negative dimension", w.ID))
		}
	}
	return nil
}

func invalid(detail string) error {
	return errors.New("G012").WithDetail(detail)
}

// Address returns the listen address of the server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// LogLevel returns the configured level, or info if it is invalid.
func (c *Config) LogLevel() slog.Level {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel parses a log level name.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
