package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Timestep != 0.01 {
		t.Errorf("expected timestep 0.01, got %g", cfg.Timestep)
	}
	if cfg.MaxIterations != 1000 {
		t.Errorf("expected 1000 iterations, got %d", cfg.MaxIterations)
	}
	if cfg.ParticleCount != 100 {
		t.Errorf("expected 100 particles, got %d", cfg.ParticleCount)
	}
	if cfg.Dimensions != 3 {
		t.Errorf("expected 3 dimensions, got %d", cfg.Dimensions)
	}
	if !cfg.EnableGravity || !cfg.EnableCollisions {
		t.Error("gravity and collisions should default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestUpdateReadback(t *testing.T) {
	cfg := Default()

	err := cfg.Update(map[string]any{
		"particle_count":   50,
		"gravity_constant": 5.0,
		"max_iterations":   500,
		"enable_gravity":   false,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if cfg.ParticleCount != 50 {
		t.Errorf("expected 50 particles, got %d", cfg.ParticleCount)
	}
	if cfg.GravityConstant != 5.0 {
		t.Errorf("expected gravity 5.0, got %g", cfg.GravityConstant)
	}
	if cfg.MaxIterations != 500 {
		t.Errorf("expected 500 iterations, got %d", cfg.MaxIterations)
	}
	if cfg.EnableGravity {
		t.Error("expected gravity disabled")
	}
}

func TestUpdateUnknownKey(t *testing.T) {
	cfg := Default()
	before := *cfg

	err := cfg.Update(map[string]any{"particle_size": 3})

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Key != "particle_size" {
		t.Errorf("expected key particle_size, got %s", cfgErr.Key)
	}
	if *cfg != before {
		t.Error("failed update must leave config unchanged")
	}
}

func TestUpdateInvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"negative particle count", map[string]any{"particle_count": -5}},
		{"zero iterations", map[string]any{"max_iterations": 0}},
		{"negative timestep", map[string]any{"timestep": -0.1}},
		{"four dimensions", map[string]any{"dimensions": 4}},
		{"zero boundary", map[string]any{"boundary_size": 0.0}},
		{"non-bool gravity flag", map[string]any{"enable_gravity": 1}},
		{"fractional count", map[string]any{"particle_count": 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			before := *cfg

			err := cfg.Update(tt.overrides)

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if *cfg != before {
				t.Error("failed update must leave config unchanged")
			}
		})
	}
}

func TestUpdateAtomic(t *testing.T) {
	cfg := Default()
	before := *cfg

	// One valid and one invalid key: nothing may be applied.
	err := cfg.Update(map[string]any{
		"particle_count": 50,
		"bogus":          true,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if *cfg != before {
		t.Error("partial update leaked through")
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	cfg := Default()
	cfg.ParticleCount = 42
	cfg.Dimensions = 2
	cfg.GravityConstant = 1.62

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("roundtrip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInterval(t *testing.T) {
	cfg := Default()
	if cfg.Interval() != 200 {
		t.Errorf("expected derived interval 200, got %d", cfg.Interval())
	}

	cfg.StatsInterval = 7
	if cfg.Interval() != 7 {
		t.Errorf("expected explicit interval 7, got %d", cfg.Interval())
	}

	cfg.StatsInterval = 0
	cfg.MaxIterations = 3
	if cfg.Interval() != 1 {
		t.Errorf("expected minimum interval 1, got %d", cfg.Interval())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("weightless")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.EnableGravity {
		t.Error("weightless preset should disable gravity")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	// Mutating a returned preset must not affect the registry.
	cfg.ParticleCount = 1
	if Presets["weightless"].ParticleCount == 1 {
		t.Error("preset registry was mutated through a copy")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected presets")
	}
}

func TestPresetsValidate(t *testing.T) {
	for name := range Presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
