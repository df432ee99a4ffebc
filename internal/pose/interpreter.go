// Package pose turns normalized head-pose landmarks into game controls.
//
// A Provider delivers Samples at whatever cadence the pose estimator runs.
// The Interpreter classifies each sample into a Zone, rate-limits ascend
// actions on the wall clock and forwards fired actions to a Controls sink.
package pose

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
)

// Sample is one landmark reading. X and Y are fractions of the camera frame,
// with Y increasing downward. Present is false when tracking is lost.
type Sample struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Present bool    `json:"-"`
}

// At returns a present sample at (x, y).
func At(x, y float64) Sample {
	return Sample{X: x, Y: y, Present: true}
}

// Zone is the vertical band the nose currently sits in.
type Zone int

const (
	ZoneUnknown Zone = iota
	ZoneAscend
	ZoneNeutral
	ZoneDescend
)

func (z Zone) String() string {
	switch z {
	case ZoneAscend:
		return "ascend"
	case ZoneNeutral:
		return "neutral"
	case ZoneDescend:
		return "descend"
	default:
		return "no signal"
	}
}

// Controls receives fired actions. *flappy.Controller satisfies it.
type Controls interface {
	TriggerAscend()
	TriggerDescend()
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Interpreter converts samples into control intents.
type Interpreter struct {
	cfg      config.Pose
	clock    Clock
	controls Controls
	logger   *log.Logger

	mu         sync.Mutex
	lastAscend time.Time
	hasFired   bool
	zone       Zone
	last       Sample
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock replaces time.Now as the cooldown clock.
func WithClock(c Clock) Option {
	return func(in *Interpreter) {
		if c != nil {
			in.clock = c
		}
	}
}

// WithLogger sets the logger used for zone changes.
func WithLogger(l *log.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// NewInterpreter creates an interpreter that forwards fired actions to
// controls. controls may be nil when only Interpret is used.
func NewInterpreter(cfg config.Pose, controls Controls, opts ...Option) *Interpreter {
	in := &Interpreter{
		cfg:      cfg,
		clock:    time.Now,
		controls: controls,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Classify returns the zone for a sample without touching any state.
func (in *Interpreter) Classify(s Sample) Zone {
	return classify(in.cfg, s)
}

func classify(cfg config.Pose, s Sample) Zone {
	switch {
	case !s.Present:
		return ZoneUnknown
	case s.Y < cfg.AscendThreshold:
		return ZoneAscend
	case s.Y > cfg.DescendThreshold:
		return ZoneDescend
	default:
		return ZoneNeutral
	}
}

// Interpret computes the intent for a sample observed at now.
//
// It returns IntentAscend only when the cooldown since the previous fired
// ascend has elapsed, IntentDescend for every sample in the descend zone and
// IntentNeutral between the thresholds. A sample without a landmark, or an
// ascend still cooling down, yields IntentNone. Samples without a landmark
// leave all state untouched.
func (in *Interpreter) Interpret(s Sample, now time.Time) core.Intent {
	if !s.Present {
		return core.IntentNone
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	zone := classify(in.cfg, s)
	in.last = s
	if zone != in.zone {
		in.logger.Debug("pose zone", "from", in.zone, "to", zone, "y", s.Y)
		in.zone = zone
	}

	switch zone {
	case ZoneAscend:
		if in.hasFired && now.Sub(in.lastAscend) < in.cfg.Cooldown {
			return core.IntentNone
		}
		in.lastAscend = now
		in.hasFired = true
		return core.IntentAscend
	case ZoneDescend:
		return core.IntentDescend
	default:
		return core.IntentNeutral
	}
}

// Feed interprets a sample at the injected clock's time and forwards any
// fired action to the controls. It is safe to call from a provider goroutine.
func (in *Interpreter) Feed(s Sample) core.Intent {
	intent := in.Interpret(s, in.clock())
	if in.controls == nil {
		return intent
	}
	switch intent {
	case core.IntentAscend:
		in.controls.TriggerAscend()
	case core.IntentDescend:
		in.controls.TriggerDescend()
	}
	return intent
}

// Zone returns the zone of the last present sample.
func (in *Interpreter) Zone() Zone {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.zone
}

// Last returns the last present sample, if any.
func (in *Interpreter) Last() (Sample, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.last, in.last.Present
}

// Thresholds returns the configured ascend and descend thresholds.
func (in *Interpreter) Thresholds() (ascend, descend float64) {
	return in.cfg.AscendThreshold, in.cfg.DescendThreshold
}
