// Package flappy implements the real-time game core: a fixed-tick physics
// and collision engine, the lifecycle controller that feeds it control
// intents, and the render pipeline that draws its state.
package flappy

import (
	"slices"

	"github.com/vovakirdan/head-flappy/internal/config"
)

// Phase is the lifecycle state of a run.
type Phase int

const (
	PhaseIdle    Phase = iota // waiting for the first ascend; simulation frozen
	PhaseRunning              // physics active
	PhaseEnded                // terminal until reset
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Obstacle is a vertical pair of solid segments with a passable gap.
type Obstacle struct {
	X         float64 // Horizontal position (left edge)
	GapTop    float64 // Y position where the gap starts
	GapHeight float64 // Height of the passable gap
	Passed    bool    // Whether the bird has cleared this obstacle (for scoring)
}

// GapBottom returns the y-coordinate of the gap's lower edge.
func (o Obstacle) GapBottom() float64 {
	return o.GapTop + o.GapHeight
}

// SimulationState is the complete mutable state of one run. It is owned by
// the Controller and mutated only by the Engine on its behalf.
type SimulationState struct {
	BirdY        float64    // vertical offset of the bird's top edge
	BirdVelocity float64    // positive is downward
	Obstacles    []Obstacle // spawn order: oldest (leftmost) first
	FrameCounter int        // running ticks, drives spawn cadence
	Score        int
	Phase        Phase
}

// NewState returns a fresh Idle state with the bird at its start position.
func NewState(cfg config.Config) *SimulationState {
	return &SimulationState{
		BirdY:     cfg.Bird.StartY,
		Obstacles: make([]Obstacle, 0, 8),
		Phase:     PhaseIdle,
	}
}

// Snapshot is an immutable copy of the simulation state plus the host-side
// values the renderer needs. It never aliases controller memory.
type Snapshot struct {
	BirdY        float64
	BirdVelocity float64
	Obstacles    []Obstacle
	FrameCounter int
	Score        int
	Phase        Phase
	Ticks        uint64 // controller ticks in every phase, for idle animation
	Theme        string
}

func (s *SimulationState) snapshot() Snapshot {
	return Snapshot{
		BirdY:        s.BirdY,
		BirdVelocity: s.BirdVelocity,
		Obstacles:    slices.Clone(s.Obstacles),
		FrameCounter: s.FrameCounter,
		Score:        s.Score,
		Phase:        s.Phase,
	}
}
