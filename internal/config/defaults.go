package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/headflap.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the built-in configuration. It matches the embedded
// YAML and is used as the base that config files are decoded over.
func DefaultConfig() Config {
	return Config{
		Playfield: Playfield{
			Width:  320,
			Height: 480,
		},
		Physics: Physics{
			Gravity:         0.5,
			AscendImpulse:   -8.0,
			DescendVelocity: 5.0,
			ObstacleSpeed:   4.0,
		},
		Bird: Bird{
			X:      50,
			Size:   20,
			StartY: 200,
		},
		Obstacles: Obstacles{
			Width:         50,
			GapHeight:     140,
			MinSegment:    50,
			SpawnInterval: 100,
			LeadDistance:  400,
		},
		Pose: Pose{
			AscendThreshold:  0.42,
			DescendThreshold: 0.58,
			Cooldown:         200 * time.Millisecond,
		},
		Theme: "classic",
	}
}
