package flappy

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
	"github.com/vovakirdan/head-flappy/internal/theme"
)

// maxPending bounds the intent queue between two ticks. When it is full the
// oldest intent is dropped; ascend and descend both overwrite velocity, so
// only the most recent ones matter.
const maxPending = 32

// Controller owns the run lifecycle (Idle -> Running -> Ended -> Idle) and
// the SimulationState. TriggerAscend, TriggerDescend, Reset and SetTheme are
// safe to call from any goroutine, concurrently with Tick.
//
// Ascend and descend are queued and applied atomically at the start of the
// next Tick. Reset takes effect immediately and advances the generation, so
// a host can drop ticks it scheduled before the reset.
type Controller struct {
	cfg    config.Config
	seeds  func() int64
	logger *log.Logger

	mu         sync.Mutex
	pending    []core.Intent
	state      *SimulationState
	engine     *Engine
	theme      string
	generation uint64
	ticks      uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSeedSource sets the function that provides the obstacle RNG seed for
// every new run. By default every run reuses the seed passed to NewController.
func WithSeedSource(next func() int64) Option {
	return func(c *Controller) {
		if next != nil {
			c.seeds = next
		}
	}
}

// NewController creates a controller in the Idle phase. The config must
// already be validated.
func NewController(cfg config.Config, seed int64, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg,
		seeds:   func() int64 { return seed },
		logger:  log.New(io.Discard),
		pending: make([]core.Intent, 0, maxPending),
		theme:   cfg.Theme,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !theme.Exists(c.theme) {
		c.theme = theme.DefaultID
	}
	c.newRun()
	return c
}

// newRun replaces the simulation state wholesale. Callers hold mu.
func (c *Controller) newRun() {
	c.state = NewState(c.cfg)
	c.engine = NewEngine(c.cfg, c.seeds())
}

// TriggerAscend queues a flap. Ignored once the run has ended.
func (c *Controller) TriggerAscend() {
	c.enqueue(core.IntentAscend)
}

// TriggerDescend queues a dive. Only has an effect while running.
func (c *Controller) TriggerDescend() {
	c.enqueue(core.IntentDescend)
}

// Apply queues an intent. Neutral and None are accepted and ignored.
func (c *Controller) Apply(in core.Intent) {
	switch in {
	case core.IntentAscend, core.IntentDescend:
		c.enqueue(in)
	}
}

func (c *Controller) enqueue(in core.Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase == PhaseEnded {
		return
	}
	if len(c.pending) == maxPending {
		copy(c.pending, c.pending[1:])
		c.pending = c.pending[:maxPending-1]
	}
	c.pending = append(c.pending, in)
}

// Reset discards queued intents and replaces the simulation state with a
// fresh Idle one, from any phase. It returns the new generation.
func (c *Controller) Reset() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	prevScore, prevPhase := c.state.Score, c.state.Phase
	c.pending = c.pending[:0]
	c.newRun()
	c.generation++

	c.logger.Debug("reset", "from", prevPhase, "score", prevScore, "generation", c.generation)
	return c.generation
}

// Generation returns a counter that advances on every Reset.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Tick applies queued intents and advances physics by one step if running.
func (c *Controller) Tick() StepResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ticks++
	for _, in := range c.pending {
		c.applyLocked(in)
	}
	c.pending = c.pending[:0]

	res := c.engine.Step(c.state)
	if res.Ended != EndNone {
		c.logger.Info("run ended", "reason", res.Ended, "score", c.state.Score, "frames", c.state.FrameCounter)
	} else if res.Scored > 0 {
		c.logger.Debug("scored", "score", c.state.Score)
	}
	return res
}

// applyLocked performs one intent's state transition. Callers hold mu.
func (c *Controller) applyLocked(in core.Intent) {
	s := c.state
	switch s.Phase {
	case PhaseIdle:
		if in != core.IntentAscend {
			return
		}
		s.Phase = PhaseRunning
		c.engine.SpawnAt(s, c.cfg.Obstacles.LeadDistance)
		s.BirdVelocity = c.cfg.Physics.AscendImpulse
		c.logger.Info("run started", "generation", c.generation)

	case PhaseRunning:
		switch in {
		case core.IntentAscend:
			s.BirdVelocity = c.cfg.Physics.AscendImpulse
		case core.IntentDescend:
			s.BirdVelocity = c.cfg.Physics.DescendVelocity
		}
	}
}

// SetTheme selects the render theme. It takes effect on the next rendered
// frame and never touches simulation state.
func (c *Controller) SetTheme(id string) error {
	if _, err := theme.Lookup(id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = id
	return nil
}

// Theme returns the selected theme ID.
func (c *Controller) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// Score returns the current score.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Score
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state.snapshot()
	snap.Ticks = c.ticks
	snap.Theme = c.theme
	return snap
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() config.Config {
	return c.cfg
}
