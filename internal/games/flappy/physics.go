package flappy

import (
	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
)

// EndReason says why a run ended.
type EndReason int

const (
	EndNone        EndReason = iota
	EndOutOfBounds           // bird left [0, height-size]
	EndCollision             // bird hit an obstacle segment
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case EndOutOfBounds:
		return "out of bounds"
	case EndCollision:
		return "collision"
	default:
		return "none"
	}
}

// StepResult reports what happened during one physics step.
type StepResult struct {
	Stepped bool      // false when the state was not Running
	Scored  int       // obstacles cleared this step
	Spawned bool      // an obstacle was appended this step
	Ended   EndReason // EndNone unless the run ended this step
}

// Engine advances a SimulationState by one fixed tick. Gravity, impulse and
// scroll speed are per-tick constants, so the simulation speed is tied to the
// tick rate.
type Engine struct {
	physics   config.Physics
	bird      config.Bird
	obstacles config.Obstacles
	playfield config.Playfield
	spawner   *Spawner
}

// NewEngine creates an engine whose obstacle placement is seeded with seed.
func NewEngine(cfg config.Config, seed int64) *Engine {
	return &Engine{
		physics:   cfg.Physics,
		bird:      cfg.Bird,
		obstacles: cfg.Obstacles,
		playfield: cfg.Playfield,
		spawner:   NewSpawner(seed, cfg),
	}
}

// Step runs one tick. It does nothing unless the state is Running; once the
// run ends the remaining stages of the tick are skipped.
//
// Obstacles spawn on a frame-count cadence: every SpawnInterval running ticks.
func (e *Engine) Step(s *SimulationState) StepResult {
	if s.Phase != PhaseRunning {
		return StepResult{}
	}
	res := StepResult{Stepped: true}

	// Semi-implicit Euler
	s.BirdVelocity += e.physics.Gravity
	s.BirdY += s.BirdVelocity

	if s.BirdY < 0 || s.BirdY > e.playfield.Height-e.bird.Size {
		s.Phase = PhaseEnded
		res.Ended = EndOutOfBounds
		return res
	}

	s.FrameCounter++
	if s.FrameCounter%e.obstacles.SpawnInterval == 0 {
		s.Obstacles = append(s.Obstacles, e.spawner.Spawn(e.playfield.Width))
		res.Spawned = true
	}

	for i := range s.Obstacles {
		s.Obstacles[i].X -= e.physics.ObstacleSpeed
	}

	bird := e.BirdBox(s.BirdY)
	for _, o := range s.Obstacles {
		if e.collides(bird, o) {
			s.Phase = PhaseEnded
			res.Ended = EndCollision
			return res
		}
	}

	// Score once the bird's left edge is past the obstacle's right edge
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		if !o.Passed && bird.X > o.X+e.obstacles.Width {
			o.Passed = true
			s.Score++
			res.Scored++
		}
	}

	// Evict from the front; obstacles share one speed so the oldest leave first
	evict := 0
	for evict < len(s.Obstacles) && s.Obstacles[evict].X+e.obstacles.Width < 0 {
		evict++
	}
	if evict > 0 {
		s.Obstacles = append(s.Obstacles[:0], s.Obstacles[evict:]...)
	}

	return res
}

// BirdBox returns the bird's collision box at vertical position y.
func (e *Engine) BirdBox(y float64) core.Box {
	return core.NewBox(e.bird.X, y, e.bird.Size, e.bird.Size)
}

// collides tests the bird against both solid segments of an obstacle.
func (e *Engine) collides(bird core.Box, o Obstacle) bool {
	top := o.TopBox(e.obstacles.Width)
	bottom := o.BottomBox(e.obstacles.Width, e.playfield.Height)
	return bird.Intersects(top) || bird.Intersects(bottom)
}

// SpawnAt appends an obstacle with its left edge at x. Used for the lead
// obstacle when a run starts.
func (e *Engine) SpawnAt(s *SimulationState, x float64) {
	s.Obstacles = append(s.Obstacles, e.spawner.Spawn(x))
}
