// Package config loads the viewer configuration from a YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vantage3d/vantage/common"
)

// WindowConfig holds the window section of the configuration.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// CameraConfig holds the initial camera pose and projection settings.
type CameraConfig struct {
	// Center is the initial orbit center.
	Center []float32 `yaml:"center"`
	// Eye optionally places the camera at an explicit position looking at
	// Center; when set it overrides Radius.
	Eye []float32 `yaml:"eye"`
	// Radius is the initial orbit distance.
	Radius float32 `yaml:"radius"`
	// FovDegrees is the vertical field of view in degrees.
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// RemoteConfig holds the remote control server settings.
type RemoteConfig struct {
	// Enabled starts the HTTP/WebSocket remote control server when true.
	Enabled bool `yaml:"enabled"`
	// Listen is the address the server binds to, e.g. "127.0.0.1:8632".
	Listen string `yaml:"listen"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`
	// Text selects human-readable output instead of JSON.
	Text bool `yaml:"text"`
}

// Config is the root viewer configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Remote RemoteConfig `yaml:"remote"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the configuration used when no file is provided.
//
// Returns:
//   - *Config: configuration populated with default values
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "vantage",
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Center:     []float32{0, 0, 0},
			Radius:     50.0,
			FovDegrees: 45.0,
			Near:       0.1,
			Far:        100.0,
		},
		Remote: RemoteConfig{
			Listen: "127.0.0.1:8632",
		},
		Log: LogConfig{
			Level: "info",
			Text:  true,
		},
	}
}

// Load reads and parses a YAML configuration file, filling any omitted
// fields from Default.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - *Config: the parsed configuration
//   - error: an error if the file cannot be read or parsed
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %q", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %q", path)
	}
	applyDefaults(cfg)
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "validate config %q", path)
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields with the Default values.
func applyDefaults(cfg *Config) {
	def := Default()
	cfg.Window.Title = common.Coalesce(cfg.Window.Title, def.Window.Title)
	cfg.Window.Width = common.Coalesce(cfg.Window.Width, def.Window.Width)
	cfg.Window.Height = common.Coalesce(cfg.Window.Height, def.Window.Height)
	if len(cfg.Camera.Center) == 0 {
		cfg.Camera.Center = def.Camera.Center
	}
	cfg.Camera.Radius = common.Coalesce(cfg.Camera.Radius, def.Camera.Radius)
	cfg.Camera.FovDegrees = common.Coalesce(cfg.Camera.FovDegrees, def.Camera.FovDegrees)
	cfg.Camera.Near = common.Coalesce(cfg.Camera.Near, def.Camera.Near)
	cfg.Camera.Far = common.Coalesce(cfg.Camera.Far, def.Camera.Far)
	cfg.Remote.Listen = common.Coalesce(cfg.Remote.Listen, def.Remote.Listen)
	cfg.Log.Level = common.Coalesce(cfg.Log.Level, def.Log.Level)
}

// validate rejects configurations the viewer cannot start with.
func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if len(c.Camera.Center) != 3 {
		return errors.Errorf("camera.center must have 3 components, got %d", len(c.Camera.Center))
	}
	if len(c.Camera.Eye) != 0 && len(c.Camera.Eye) != 3 {
		return errors.Errorf("camera.eye must have 3 components, got %d", len(c.Camera.Eye))
	}
	if c.Camera.Radius <= 0 {
		return errors.Errorf("camera.radius must be positive, got %v", c.Camera.Radius)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return errors.Errorf("camera planes must satisfy 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}
