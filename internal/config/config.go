// Package config provides YAML-based game configuration loading, physics
// presets and validation.
package config

import "time"

// Config contains all tunables for the game core.
type Config struct {
	Playfield Playfield `yaml:"playfield"`
	Physics   Physics   `yaml:"physics"`
	Bird      Bird      `yaml:"bird"`
	Obstacles Obstacles `yaml:"obstacles"`
	Pose      Pose      `yaml:"pose"`
	Theme     string    `yaml:"theme"`
}

// Playfield defines the simulation area in world units.
type Playfield struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines the per-tick physics constants. They are fixed scalars,
// so the simulation speed is tied to the tick rate.
type Physics struct {
	Gravity         float64 `yaml:"gravity"`
	AscendImpulse   float64 `yaml:"ascend_impulse"`
	DescendVelocity float64 `yaml:"descend_velocity"`
	ObstacleSpeed   float64 `yaml:"obstacle_speed"`
}

// Bird defines the player's hitbox and starting position.
type Bird struct {
	X      float64 `yaml:"x"`
	Size   float64 `yaml:"size"`
	StartY float64 `yaml:"start_y"`
}

// Obstacles defines obstacle geometry and spawn cadence.
type Obstacles struct {
	Width         float64 `yaml:"width"`
	GapHeight     float64 `yaml:"gap_height"`
	MinSegment    float64 `yaml:"min_segment"`
	SpawnInterval int     `yaml:"spawn_interval"`
	LeadDistance  float64 `yaml:"lead_distance"`
}

// Pose defines the pose signal interpreter's zones and flap cooldown.
// Thresholds are fractions of frame height, measured from the top.
type Pose struct {
	AscendThreshold  float64       `yaml:"ascend_threshold"`
	DescendThreshold float64       `yaml:"descend_threshold"`
	Cooldown         time.Duration `yaml:"cooldown"`
}

// Preset represents a named physics preset.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset converts a flag value into a Preset. Empty means normal.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetEasy, PresetHard:
		return Preset(s), nil
	default:
		return "", invalidf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}
