package config

// ApplyPreset adjusts obstacle gap and scroll speed for a difficulty preset.
// Normal leaves the configuration untouched. The result still needs Validate.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		maxGap := cfg.Playfield.Height - 2*cfg.Obstacles.MinSegment
		cfg.Obstacles.GapHeight = min(cfg.Obstacles.GapHeight*1.25, maxGap)
		cfg.Physics.ObstacleSpeed *= 0.75
	case PresetHard:
		cfg.Obstacles.GapHeight = max(cfg.Obstacles.GapHeight*0.8, cfg.Bird.Size*3)
		cfg.Physics.ObstacleSpeed *= 1.25
	}
}
