package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default yaml) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded YAML and DefaultConfig differ:\n yaml: %+v\n code: %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	data := []byte(`
physics:
  gravity: 0.75
pose:
  cooldown: 350ms
theme: night
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.75 {
		t.Errorf("gravity = %g, expected 0.75", cfg.Physics.Gravity)
	}
	if cfg.Pose.Cooldown != 350*time.Millisecond {
		t.Errorf("cooldown = %s, expected 350ms", cfg.Pose.Cooldown)
	}
	if cfg.Theme != "night" {
		t.Errorf("theme = %q, expected night", cfg.Theme)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.AscendImpulse != DefaultConfig().Physics.AscendImpulse {
		t.Errorf("ascend impulse should keep default, got %g", cfg.Physics.AscendImpulse)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("physics:\n  gravty: 1\n")); err == nil {
		t.Error("Parse should reject unknown keys")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  spawn_interval: 80\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Obstacles.SpawnInterval != 80 {
		t.Errorf("spawn interval = %d, expected 80", cfg.Obstacles.SpawnInterval)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load should fail for a missing custom path")
	}
}

func TestLoadInvalidCustomConfigFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  gap_height: 900\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load should fail validation with ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"gap larger than playfield", func(c *Config) { c.Obstacles.GapHeight = 500 }, false},
		{"gap plus segments too tall", func(c *Config) { c.Obstacles.GapHeight = 400 }, false},
		{"gap smaller than bird", func(c *Config) { c.Obstacles.GapHeight = 10 }, false},
		{"thresholds inverted", func(c *Config) { c.Pose.AscendThreshold = 0.6 }, false},
		{"thresholds equal", func(c *Config) { c.Pose.DescendThreshold = 0.42 }, false},
		{"threshold above one", func(c *Config) { c.Pose.DescendThreshold = 1.2 }, false},
		{"descend as strong as ascend", func(c *Config) { c.Physics.DescendVelocity = 8 }, false},
		{"ascend impulse downward", func(c *Config) { c.Physics.AscendImpulse = 3 }, false},
		{"zero spawn interval", func(c *Config) { c.Obstacles.SpawnInterval = 0 }, false},
		{"bird starts below floor", func(c *Config) { c.Bird.StartY = 470 }, false},
		{"negative cooldown", func(c *Config) { c.Pose.Cooldown = -time.Second }, false},
		{"zero cooldown", func(c *Config) { c.Pose.Cooldown = 0 }, true},
		{"zero playfield", func(c *Config) { c.Playfield.Height = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid {
				if err == nil {
					t.Error("expected validation error")
				} else if !errors.Is(err, ErrInvalid) {
					t.Errorf("error should wrap ErrInvalid, got %v", err)
				}
			}
		})
	}
}

func TestPresets(t *testing.T) {
	base := DefaultConfig()

	easy := DefaultConfig()
	ApplyPreset(&easy, PresetEasy)
	if easy.Obstacles.GapHeight <= base.Obstacles.GapHeight {
		t.Errorf("easy gap %g should be wider than %g", easy.Obstacles.GapHeight, base.Obstacles.GapHeight)
	}
	if err := easy.Validate(); err != nil {
		t.Errorf("easy preset should validate: %v", err)
	}

	hard := DefaultConfig()
	ApplyPreset(&hard, PresetHard)
	if hard.Physics.ObstacleSpeed <= base.Physics.ObstacleSpeed {
		t.Errorf("hard speed %g should be faster than %g", hard.Physics.ObstacleSpeed, base.Physics.ObstacleSpeed)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset should validate: %v", err)
	}

	normal := DefaultConfig()
	ApplyPreset(&normal, PresetNormal)
	if normal != base {
		t.Error("normal preset should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != PresetNormal {
		t.Errorf("empty preset = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != PresetHard {
		t.Errorf("hard preset = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown preset should fail with ErrInvalid, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("round trip changed config: %+v", cfg)
	}
}
