package flappy

import (
	"math/rand"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
)

// Spawner creates obstacles with randomized gap placement. It owns the
// simulation RNG, which is independent of any cosmetic randomness.
type Spawner struct {
	rng *rand.Rand
	cfg config.Obstacles
	pf  config.Playfield
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg config.Config) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg.Obstacles,
		pf:  cfg.Playfield,
	}
}

// Spawn creates a new obstacle whose left edge is at x. The gap is placed
// uniformly so that both solid segments are at least MinSegment tall, which
// config validation guarantees is possible.
func (sp *Spawner) Spawn(x float64) Obstacle {
	minTop := sp.cfg.MinSegment
	maxTop := sp.pf.Height - sp.cfg.MinSegment - sp.cfg.GapHeight

	gapTop := minTop
	if maxTop > minTop {
		gapTop = minTop + sp.rng.Float64()*(maxTop-minTop)
	}

	return Obstacle{
		X:         x,
		GapTop:    gapTop,
		GapHeight: sp.cfg.GapHeight,
	}
}

// TopBox returns the collision box of the upper solid segment.
func (o Obstacle) TopBox(width float64) core.Box {
	return core.NewBox(o.X, 0, width, o.GapTop)
}

// BottomBox returns the collision box of the lower solid segment.
func (o Obstacle) BottomBox(width, playfieldH float64) core.Box {
	bottom := o.GapBottom()
	return core.NewBox(o.X, bottom, width, playfieldH-bottom)
}
