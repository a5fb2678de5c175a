package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation.NodeSize != 1.0 {
		t.Errorf("expected node size 1.0, got %f", cfg.Simulation.NodeSize)
	}
	if cfg.Simulation.LinkDistance != 60 {
		t.Errorf("expected link distance 60, got %f", cfg.Simulation.LinkDistance)
	}
	if cfg.Tooltip.Detail != TooltipSimple {
		t.Errorf("expected tooltip detail 'simple', got %q", cfg.Tooltip.Detail)
	}
	if cfg.Tooltip.Trigger != TriggerHover {
		t.Errorf("expected tooltip trigger 'hover', got %q", cfg.Tooltip.Trigger)
	}
	if cfg.Colors.Theme != "adaptive" {
		t.Errorf("expected theme 'adaptive', got %q", cfg.Colors.Theme)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Tooltip.Detail != TooltipSimple {
		t.Errorf("expected default config, got detail %q", cfg.Tooltip.Detail)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
simulation:
  fix_nodes_on_drag: true
  node_size: 1.5
  link_distance: 90
  node_charge: 300

colors:
  theme: custom
  custom:
    alpha: "#ff0000"
    beta: "#00ff00"
  link_color: "#888888"

tooltip:
  detail: detailed
  trigger: click

watch: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Simulation.FixNodesOnDrag {
		t.Error("expected fix_nodes_on_drag true")
	}
	if cfg.Simulation.NodeSize != 1.5 {
		t.Errorf("expected node size 1.5, got %f", cfg.Simulation.NodeSize)
	}
	if cfg.Simulation.LinkDistance != 90 {
		t.Errorf("expected link distance 90, got %f", cfg.Simulation.LinkDistance)
	}
	if cfg.Colors.Custom["alpha"] != "#ff0000" {
		t.Errorf("expected custom color for alpha, got %q", cfg.Colors.Custom["alpha"])
	}
	if cfg.Tooltip.Detail != TooltipDetailed {
		t.Errorf("expected detail 'detailed', got %q", cfg.Tooltip.Detail)
	}
	if cfg.Tooltip.Trigger != TriggerClick {
		t.Errorf("expected trigger 'click', got %q", cfg.Tooltip.Trigger)
	}
	if !cfg.Watch {
		t.Error("expected watch true")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("simulation: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestNormalizeClampsAndDefaults(t *testing.T) {
	tests := []struct {
		name  string
		in    Config
		check func(t *testing.T, cfg Config)
	}{
		{
			"node size clamped high",
			Config{Simulation: SimulationConfig{NodeSize: 5}},
			func(t *testing.T, cfg Config) {
				if cfg.Simulation.NodeSize != MaxNodeSize {
					t.Errorf("node size = %f, want %f", cfg.Simulation.NodeSize, MaxNodeSize)
				}
			},
		},
		{
			"node size clamped low",
			Config{Simulation: SimulationConfig{NodeSize: 0.1}},
			func(t *testing.T, cfg Config) {
				if cfg.Simulation.NodeSize != MinNodeSize {
					t.Errorf("node size = %f, want %f", cfg.Simulation.NodeSize, MinNodeSize)
				}
			},
		},
		{
			"bad tooltip enums replaced",
			Config{Tooltip: TooltipConfig{Detail: "verbose", Trigger: "wave"}},
			func(t *testing.T, cfg Config) {
				if cfg.Tooltip.Detail != TooltipSimple || cfg.Tooltip.Trigger != TriggerHover {
					t.Errorf("tooltip = %+v", cfg.Tooltip)
				}
			},
		},
		{
			"enum casing normalized",
			Config{Tooltip: TooltipConfig{Detail: "Detailed", Trigger: "PERSISTENT"}},
			func(t *testing.T, cfg Config) {
				if cfg.Tooltip.Detail != TooltipDetailed || cfg.Tooltip.Trigger != TriggerPersistent {
					t.Errorf("tooltip = %+v", cfg.Tooltip)
				}
			},
		},
		{
			"link strength out of range",
			Config{Simulation: SimulationConfig{LinkStrength: 3}},
			func(t *testing.T, cfg Config) {
				if cfg.Simulation.LinkStrength != 0.7 {
					t.Errorf("link strength = %f, want 0.7", cfg.Simulation.LinkStrength)
				}
			},
		},
		{
			"opacity clamped",
			Config{Colors: ColorConfig{BackgroundOpacity: 2}},
			func(t *testing.T, cfg Config) {
				if cfg.Colors.BackgroundOpacity != 1 {
					t.Errorf("opacity = %f, want 1", cfg.Colors.BackgroundOpacity)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			tt.check(t, tt.in)
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Simulation.NodeSize = 1.2
	cfg.Watch = true

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Simulation.NodeSize != 1.2 || !loaded.Watch {
		t.Errorf("round trip lost settings: %+v", loaded)
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	if got := ConfigDir(); got != filepath.Join("/tmp/xdg-test", "gv") {
		t.Errorf("ConfigDir() = %q", got)
	}
}
