// Package config handles loading and saving gv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/gv/config.yaml
//   - Data:    ~/.local/share/gv/ (themes)
//   - State:   ~/.local/state/gv/ (recent files)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recognized tooltip detail levels.
const (
	TooltipSimple   = "simple"
	TooltipDetailed = "detailed"
)

// Recognized tooltip triggers.
const (
	TriggerHover      = "hover"
	TriggerClick      = "click"
	TriggerPersistent = "persistent"
)

// Simulation bounds. NodeSize is a multiplier applied to every node radius.
const (
	MinNodeSize = 0.5
	MaxNodeSize = 2.0
)

// SimulationConfig tunes the force layout.
type SimulationConfig struct {
	FixNodesOnDrag bool    `yaml:"fix_nodes_on_drag,omitempty"` // dragged nodes stay pinned on release
	NodeSize       float64 `yaml:"node_size,omitempty"`         // radius multiplier, 0.5-2.0
	LinkDistance   float64 `yaml:"link_distance,omitempty"`
	LinkStrength   float64 `yaml:"link_strength,omitempty"`
	NodeCharge     float64 `yaml:"node_charge,omitempty"`
}

// ColorConfig holds theme and per-element color overrides. Colors are any
// form lipgloss accepts (hex or ANSI index).
type ColorConfig struct {
	Theme             string            `yaml:"theme,omitempty"`              // named theme, or "custom"
	Custom            map[string]string `yaml:"custom,omitempty"`             // category -> color
	BackgroundColor   string            `yaml:"background_color,omitempty"`
	BackgroundOpacity float64           `yaml:"background_opacity,omitempty"` // 0-1
	LinkColor         string            `yaml:"link_color,omitempty"`
	NodeStrokeColor   string            `yaml:"node_stroke_color,omitempty"`
	TextColor         string            `yaml:"text_color,omitempty"`
}

// TooltipConfig controls tooltip content and activation.
type TooltipConfig struct {
	Detail  string `yaml:"detail,omitempty"`  // simple, detailed
	Trigger string `yaml:"trigger,omitempty"` // hover, click, persistent
}

// Config is the top-level configuration for gv.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation,omitempty"`
	Colors     ColorConfig      `yaml:"colors,omitempty"`
	Tooltip    TooltipConfig    `yaml:"tooltip,omitempty"`
	Watch      bool             `yaml:"watch,omitempty"` // reload on input file change
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			NodeSize:     1.0,
			LinkDistance: 60,
			LinkStrength: 0.7,
			NodeCharge:   240,
		},
		Colors: ColorConfig{
			Theme:             "adaptive",
			BackgroundOpacity: 1.0,
		},
		Tooltip: TooltipConfig{
			Detail:  TooltipSimple,
			Trigger: TriggerHover,
		},
	}
}

// ConfigDir returns the XDG config directory for gv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gv")
}

// DataDir returns the XDG data directory for gv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "gv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "gv")
}

// StateDir returns the XDG state directory for gv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "gv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "gv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Normalize clamps out-of-range values and replaces unrecognized enums
// with their defaults. Bad settings degrade, they never fail a load.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Simulation.NodeSize == 0 {
		c.Simulation.NodeSize = def.Simulation.NodeSize
	}
	c.Simulation.NodeSize = clamp(c.Simulation.NodeSize, MinNodeSize, MaxNodeSize)
	if c.Simulation.LinkDistance <= 0 {
		c.Simulation.LinkDistance = def.Simulation.LinkDistance
	}
	if c.Simulation.LinkStrength <= 0 || c.Simulation.LinkStrength > 1 {
		c.Simulation.LinkStrength = def.Simulation.LinkStrength
	}
	if c.Simulation.NodeCharge == 0 {
		c.Simulation.NodeCharge = def.Simulation.NodeCharge
	}

	c.Colors.BackgroundOpacity = clamp(c.Colors.BackgroundOpacity, 0, 1)
	if c.Colors.Theme == "" {
		c.Colors.Theme = def.Colors.Theme
	}

	switch strings.ToLower(c.Tooltip.Detail) {
	case TooltipSimple, TooltipDetailed:
		c.Tooltip.Detail = strings.ToLower(c.Tooltip.Detail)
	default:
		c.Tooltip.Detail = def.Tooltip.Detail
	}
	switch strings.ToLower(c.Tooltip.Trigger) {
	case TriggerHover, TriggerClick, TriggerPersistent:
		c.Tooltip.Trigger = strings.ToLower(c.Tooltip.Trigger)
	default:
		c.Tooltip.Trigger = def.Tooltip.Trigger
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
