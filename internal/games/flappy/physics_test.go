package flappy

import (
	"testing"

	"github.com/vovakirdan/head-flappy/internal/config"
)

// openConfig returns a config whose obstacles have no solid segments, so
// the bird can hover through them while cadence, scoring and eviction are
// exercised.
func openConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Obstacles.MinSegment = 0
	cfg.Obstacles.GapHeight = cfg.Playfield.Height
	return cfg
}

func runningState(cfg config.Config) *SimulationState {
	s := NewState(cfg)
	s.Phase = PhaseRunning
	return s
}

// hover cancels the next gravity increment so the bird keeps its height.
func hover(cfg config.Config, s *SimulationState) {
	s.BirdVelocity = -cfg.Physics.Gravity
}

func TestSemiImplicitEuler(t *testing.T) {
	cfg := config.DefaultConfig()
	e := NewEngine(cfg, 1)
	s := runningState(cfg)
	s.BirdY = 200
	s.BirdVelocity = -3

	e.Step(s)

	if s.BirdVelocity != -2.5 {
		t.Errorf("velocity = %v, expected -2.5", s.BirdVelocity)
	}
	if s.BirdY != 197.5 {
		t.Errorf("position = %v, expected 197.5", s.BirdY)
	}

	// Over many ticks the engine matches the recurrence exactly
	y, v := s.BirdY, s.BirdVelocity
	for i := 0; i < 20 && s.Phase == PhaseRunning; i++ {
		v += cfg.Physics.Gravity
		y += v
		e.Step(s)
		if s.Phase != PhaseRunning {
			break
		}
		if s.BirdVelocity != v || s.BirdY != y {
			t.Fatalf("tick %d: got (y=%v, v=%v), expected (y=%v, v=%v)", i, s.BirdY, s.BirdVelocity, y, v)
		}
	}
}

func TestStepIgnoredUnlessRunning(t *testing.T) {
	cfg := config.DefaultConfig()
	e := NewEngine(cfg, 1)

	for _, phase := range []Phase{PhaseIdle, PhaseEnded} {
		s := NewState(cfg)
		s.Phase = phase
		s.BirdVelocity = 3

		res := e.Step(s)

		if res.Stepped {
			t.Errorf("%s: Step should report no step", phase)
		}
		if s.BirdY != cfg.Bird.StartY || s.BirdVelocity != 3 || s.FrameCounter != 0 {
			t.Errorf("%s: state mutated: %+v", phase, s)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	cfg := config.DefaultConfig()
	floor := cfg.Playfield.Height - cfg.Bird.Size

	tests := []struct {
		name     string
		y, v     float64
		expected EndReason
	}{
		{"above ceiling", 1, -8, EndOutOfBounds},
		{"below floor", floor - 1, 1, EndOutOfBounds},
		{"exactly on floor", floor - 1, 0.5, EndNone},
		{"exactly on ceiling", 0.5, -1, EndNone},
		{"mid air", 200, 0, EndNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(cfg, 1)
			s := runningState(cfg)
			s.BirdY = tc.y
			s.BirdVelocity = tc.v

			res := e.Step(s)

			if res.Ended != tc.expected {
				t.Errorf("Ended = %s, expected %s (y=%v)", res.Ended, tc.expected, s.BirdY)
			}
			if tc.expected != EndNone {
				if s.Phase != PhaseEnded {
					t.Errorf("phase = %s, expected Ended", s.Phase)
				}
				if s.FrameCounter != 0 {
					t.Error("an ended tick should skip the rest of the step")
				}
			}
		})
	}
}

func TestCollision(t *testing.T) {
	cfg := config.DefaultConfig()

	// After one step the obstacle sits at X-4; gap spans [180, 320].
	tests := []struct {
		name     string
		obstX    float64
		birdY    float64
		collides bool
	}{
		{"fully inside gap", 40, 200, false},
		{"top edge flush with gap top", 40, 180, false},
		{"bottom edge flush with gap bottom", 40, 300, false},
		{"top above gap", 40, 170, true},
		{"bottom below gap", 40, 310, true},
		{"far above gap", 40, 20, true},
		{"obstacle starts at bird right edge", 74, 20, false},
		{"obstacle ends at bird left edge", 4, 20, false},
		{"one unit of horizontal overlap", 73, 20, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(cfg, 1)
			s := runningState(cfg)
			s.BirdY = tc.birdY
			hover(cfg, s)
			s.Obstacles = append(s.Obstacles, Obstacle{X: tc.obstX, GapTop: 180, GapHeight: 140})

			res := e.Step(s)

			if got := res.Ended == EndCollision; got != tc.collides {
				t.Errorf("collision = %v, expected %v", got, tc.collides)
			}
			if tc.collides && s.Phase != PhaseEnded {
				t.Error("collision should end the run")
			}
			if !tc.collides && s.Phase != PhaseRunning {
				t.Errorf("phase = %s, expected Running", s.Phase)
			}
		})
	}
}

func TestSpawnCadenceAndEviction(t *testing.T) {
	cfg := openConfig()
	e := NewEngine(cfg, 7)
	s := runningState(cfg)

	spawns := 0
	maxLen := 0
	for tick := 1; tick <= 2000; tick++ {
		hover(cfg, s)
		res := e.Step(s)
		if res.Ended != EndNone {
			t.Fatalf("tick %d: unexpected end %s", tick, res.Ended)
		}
		if res.Spawned {
			spawns++
			if tick%cfg.Obstacles.SpawnInterval != 0 {
				t.Errorf("spawn at tick %d is off cadence", tick)
			}
		}
		maxLen = max(maxLen, len(s.Obstacles))

		for i := 1; i < len(s.Obstacles); i++ {
			if s.Obstacles[i-1].X >= s.Obstacles[i].X {
				t.Fatalf("tick %d: obstacles out of spawn order", tick)
			}
		}
		for _, o := range s.Obstacles {
			if o.X+cfg.Obstacles.Width < 0 {
				t.Fatalf("tick %d: off-screen obstacle was not evicted", tick)
			}
		}
	}

	if spawns != 20 {
		t.Errorf("spawns = %d, expected 20", spawns)
	}
	if maxLen > 3 {
		t.Errorf("obstacle window grew to %d", maxLen)
	}
}

func TestSpawnedGapFitsPlayfield(t *testing.T) {
	cfg := config.DefaultConfig()
	sp := NewSpawner(99, cfg)

	for i := 0; i < 1000; i++ {
		o := sp.Spawn(cfg.Playfield.Width)
		if o.GapTop < cfg.Obstacles.MinSegment {
			t.Fatalf("gap top %v above min segment", o.GapTop)
		}
		if o.GapBottom() > cfg.Playfield.Height-cfg.Obstacles.MinSegment {
			t.Fatalf("gap bottom %v below max", o.GapBottom())
		}
		if o.X != cfg.Playfield.Width || o.Passed {
			t.Fatalf("unexpected spawn %+v", o)
		}
	}
}

func TestScoringExactlyOnce(t *testing.T) {
	cfg := openConfig()
	e := NewEngine(cfg, 1)
	s := runningState(cfg)
	s.Obstacles = append(s.Obstacles,
		Obstacle{X: -5, GapHeight: cfg.Playfield.Height},
		Obstacle{X: -20, GapHeight: cfg.Playfield.Height, Passed: true},
	)

	hover(cfg, s)
	res := e.Step(s)
	if res.Scored != 1 || s.Score != 1 {
		t.Fatalf("first tick: scored=%d score=%d, expected 1 and 1", res.Scored, s.Score)
	}
	if !s.Obstacles[0].Passed {
		t.Error("scored obstacle should be flagged passed")
	}

	for i := 0; i < 10; i++ {
		hover(cfg, s)
		if res := e.Step(s); res.Scored != 0 {
			t.Fatalf("tick %d: scored again", i)
		}
	}
	if s.Score != 1 {
		t.Errorf("score = %d, expected 1", s.Score)
	}
}

func TestScoringFollowsPassedObstacles(t *testing.T) {
	cfg := openConfig()
	e := NewEngine(cfg, 3)
	s := runningState(cfg)

	for tick := 1; tick <= 350; tick++ {
		hover(cfg, s)
		e.Step(s)
	}

	// Obstacles spawned at ticks 100 and 200 are cleared; the one from 300 is not
	if s.Score != 2 {
		t.Errorf("score = %d, expected 2", s.Score)
	}
}
