// Package replay runs recorded pose sessions through the game without a
// terminal. Time is simulated: frame k happens at k frame intervals after
// the start of the recording, so a replay is fully deterministic.
package replay

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
	"github.com/vovakirdan/head-flappy/internal/games/flappy"
	"github.com/vovakirdan/head-flappy/internal/pose"
)

// DefaultMaxTicks bounds a replay that keeps running after its samples.
const DefaultMaxTicks = 60 * 60 * 10

// Options configures a replay.
type Options struct {
	TickRate int
	Seed     int64

	// UntilEnd keeps ticking after the last sample until the run ends or
	// MaxTicks is reached.
	UntilEnd bool
	MaxTicks int

	Logger *log.Logger
}

// Result summarizes a finished replay.
type Result struct {
	Phase    flappy.Phase
	Score    int
	Ticks    int
	Frames   int // physics steps taken while running
	Ascends  int
	Descends int
	Ended    flappy.EndReason
}

// Run replays samples against a fresh controller built from cfg.
func Run(cfg config.Config, samples []pose.TimedSample, opts Options) Result {
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctrl := flappy.NewController(cfg, opts.Seed, flappy.WithLogger(logger))
	interp := pose.NewInterpreter(cfg.Pose, nil, pose.WithLogger(logger))

	// Any fixed origin works; only differences between instants matter.
	origin := time.Unix(0, 0)
	frame := time.Second / time.Duration(opts.TickRate)

	var res Result
	next := 0
	for tick := 0; tick < opts.MaxTicks; tick++ {
		now := time.Duration(tick) * frame
		for next < len(samples) && samples[next].At <= now {
			intent := interp.Interpret(samples[next].Sample, origin.Add(samples[next].At))
			switch intent {
			case core.IntentAscend:
				res.Ascends++
			case core.IntentDescend:
				res.Descends++
			}
			ctrl.Apply(intent)
			next++
		}

		step := ctrl.Tick()
		res.Ticks++
		if step.Stepped {
			res.Frames++
		}
		if step.Ended != flappy.EndNone {
			res.Ended = step.Ended
			break
		}
		if next >= len(samples) && !opts.UntilEnd {
			break
		}
	}

	res.Phase = ctrl.Phase()
	res.Score = ctrl.Score()
	logger.Info("replay finished", "phase", res.Phase, "score", res.Score, "ticks", res.Ticks)
	return res
}
