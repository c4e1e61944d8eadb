// Package config loads orbview's TOML configuration: store location,
// server address, viewer pacing, and export defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds orbview configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Viewer   ViewerConfig   `toml:"viewer"`
	Export   ExportConfig   `toml:"export"`
}

// DatabaseConfig selects the session store.
type DatabaseConfig struct {
	// Path to the SQLite file; empty means the per-user default under
	// the home directory.
	Path string `toml:"path"`
}

// ServerConfig controls the HTTP API listener.
type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

// Addr returns the bind address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Bind, s.Port)
}

// ViewerConfig controls the terminal viewer.
type ViewerConfig struct {
	PixelRatio     float64 `toml:"pixel_ratio"`
	FPS            int     `toml:"fps"`
	RefreshSeconds int     `toml:"refresh_seconds"`
}

// FrameInterval converts the FPS setting into a frame pacing interval.
func (v ViewerConfig) FrameInterval() time.Duration {
	if v.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(v.FPS)
}

// RefreshInterval returns the store re-list cadence.
func (v ViewerConfig) RefreshInterval() time.Duration {
	return time.Duration(v.RefreshSeconds) * time.Second
}

// ExportConfig sets snapshot export defaults.
type ExportConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
	Steps  int     `toml:"steps"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Bind: "127.0.0.1", Port: 8642},
		Viewer: ViewerConfig{PixelRatio: 2, FPS: 30, RefreshSeconds: 5},
		Export: ExportConfig{Width: 800, Height: 600, Scale: 2, Steps: 600},
	}
}

// Dir returns the orbview config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "orbview")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path, or the default location when path is
// empty. A missing file at the default location yields defaults; a
// missing explicit path, or a malformed file anywhere, is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.clampDefaults()
	return cfg, nil
}

// clampDefaults pulls out-of-range settings back to their defaults so a
// sloppy config file cannot stall the viewer or bind nonsense.
func (c *Config) clampDefaults() {
	def := Default()
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		c.Server.Port = def.Server.Port
	}
	if c.Viewer.PixelRatio <= 0 {
		c.Viewer.PixelRatio = def.Viewer.PixelRatio
	}
	if c.Viewer.FPS <= 0 {
		c.Viewer.FPS = def.Viewer.FPS
	}
	if c.Viewer.RefreshSeconds <= 0 {
		c.Viewer.RefreshSeconds = def.Viewer.RefreshSeconds
	}
	if c.Export.Width <= 0 {
		c.Export.Width = def.Export.Width
	}
	if c.Export.Height <= 0 {
		c.Export.Height = def.Export.Height
	}
	if c.Export.Scale < 1 {
		c.Export.Scale = def.Export.Scale
	}
	if c.Export.Steps < 0 {
		c.Export.Steps = def.Export.Steps
	}
}
