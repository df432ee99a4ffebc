package theme

import "github.com/vovakirdan/head-flappy/internal/core"

func init() {
	Register(Descriptor{
		ID:          "classic",
		Title:       "Classic Day",
		Sky:         []core.Color{117, 117, 152, 152, 153, 195},
		Motif:       MotifNone,
		Obstacle:    34,
		ObstacleCap: 22,
		Text:        core.ColorBrightWhite,
	})
	Register(Descriptor{
		ID:          "night",
		Title:       "Starry Night",
		Sky:         []core.Color{16, 17, 17, 18, 54, 55},
		Motif:       MotifStars,
		MotifColors: []core.Color{15, 229, 195, 250},
		Obstacle:    61,
		ObstacleCap: 141,
		Text:        core.ColorBrightYellow,
	})
	Register(Descriptor{
		ID:          "winter",
		Title:       "Winter Snow",
		Sky:         []core.Color{67, 110, 152, 153, 189, 231},
		Motif:       MotifSnow,
		MotifColors: []core.Color{15, 255, 195},
		Obstacle:    24,
		ObstacleCap: 231,
		Text:        core.ColorBrightWhite,
	})
	Register(Descriptor{
		ID:          "ocean",
		Title:       "Deep Ocean",
		Sky:         []core.Color{45, 38, 31, 25, 24, 17},
		Motif:       MotifBubbles,
		MotifColors: []core.Color{123, 159, 195},
		Obstacle:    130,
		ObstacleCap: 214,
		Text:        core.ColorBrightCyan,
	})
	Register(Descriptor{
		ID:          "sakura",
		Title:       "Sakura Bloom",
		Sky:         []core.Color{225, 224, 218, 217, 211, 182},
		Motif:       MotifPetals,
		MotifColors: []core.Color{205, 211, 218, 15},
		Obstacle:    95,
		ObstacleCap: 168,
		Text:        core.ColorMagenta,
	})
}
