package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Qubits != 2 {
		t.Errorf("expected Qubits 2, got %d", cfg.Qubits)
	}
	if cfg.Depth != 18 {
		t.Errorf("expected Depth 18, got %d", cfg.Depth)
	}
	if cfg.RotationStep != "pi/8" {
		t.Errorf("expected RotationStep 'pi/8', got '%s'", cfg.RotationStep)
	}
	if !cfg.CollapseOnMeasure {
		t.Error("expected CollapseOnMeasure to be true by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected Log.Level 'info', got '%s'", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qgrid.yaml")
	content := `
qubits: 3
depth: 10
rotation_step: pi/4
seed: 1234
collapse_on_measure: false
log:
  level: debug
  file: /tmp/qgrid.log
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Qubits != 3 || cfg.Depth != 10 {
		t.Errorf("expected 3x10 grid, got %dx%d", cfg.Qubits, cfg.Depth)
	}
	if cfg.MaxQubits != DefaultMaxQubits {
		t.Errorf("unset fields keep defaults: MaxQubits = %d", cfg.MaxQubits)
	}
	if cfg.Seed != 1234 {
		t.Errorf("expected Seed 1234, got %d", cfg.Seed)
	}
	if cfg.CollapseOnMeasure {
		t.Error("expected CollapseOnMeasure false")
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/qgrid.log" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	a, err := cfg.RotationAngle()
	if err != nil || math.Abs(a-math.Pi/4) > 1e-12 {
		t.Errorf("RotationAngle() = %g, %v", a, err)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qgrid.yaml")
	if err := os.WriteFile(path, []byte("qubits: [nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qgrid.yaml")
	if err := os.WriteFile(path, []byte("qubits: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QGRID_QUBITS", "4")
	t.Setenv("QGRID_SEED", "77")
	t.Setenv("QGRID_COLLAPSE_ON_MEASURE", "0")
	t.Setenv("QGRID_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Qubits != 4 {
		t.Errorf("env should override file: Qubits = %d", cfg.Qubits)
	}
	if cfg.Seed != 77 {
		t.Errorf("Seed = %d", cfg.Seed)
	}
	if cfg.CollapseOnMeasure {
		t.Error("CollapseOnMeasure should be false")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero qubits", func(c *Config) { c.Qubits = 0 }, true},
		{"zero depth", func(c *Config) { c.Depth = 0 }, true},
		{"qubits above max", func(c *Config) { c.Qubits = 6 }, true},
		{"bad rotation", func(c *Config) { c.RotationStep = "tau" }, true},
		{"zero rotation", func(c *Config) { c.RotationStep = "0" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"empty log level", func(c *Config) { c.Log.Level = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQubitsForLevel(t *testing.T) {
	cfg := Default()
	cfg.MaxQubits = 4
	tests := []struct {
		level int
		want  int
	}{
		{1, 2},
		{2, 4},
		{3, 4},
		{0, 2},
	}
	for _, tt := range tests {
		if got := cfg.QubitsForLevel(tt.level); got != tt.want {
			t.Errorf("QubitsForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}

	cfg.MaxQubits = 1
	if got := cfg.QubitsForLevel(1); got != 1 {
		t.Errorf("cap below default: got %d", got)
	}
}
