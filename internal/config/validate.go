package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the configuration invariants. Obstacle geometry is
// checked here so that spawning can never produce a gap outside the
// playfield.
func (c Config) Validate() error {
	pf := c.Playfield
	if pf.Width <= 0 || pf.Height <= 0 {
		return invalidf("playfield must be positive, got %gx%g", pf.Width, pf.Height)
	}

	ph := c.Physics
	if ph.Gravity <= 0 {
		return invalidf("physics.gravity must be positive, got %g", ph.Gravity)
	}
	if ph.AscendImpulse >= 0 {
		return invalidf("physics.ascend_impulse must be negative (upward), got %g", ph.AscendImpulse)
	}
	if ph.DescendVelocity <= 0 {
		return invalidf("physics.descend_velocity must be positive (downward), got %g", ph.DescendVelocity)
	}
	if ph.DescendVelocity >= math.Abs(ph.AscendImpulse) {
		return invalidf("physics.descend_velocity (%g) must be smaller than |ascend_impulse| (%g)",
			ph.DescendVelocity, math.Abs(ph.AscendImpulse))
	}
	if ph.ObstacleSpeed <= 0 {
		return invalidf("physics.obstacle_speed must be positive, got %g", ph.ObstacleSpeed)
	}

	b := c.Bird
	if b.Size <= 0 {
		return invalidf("bird.size must be positive, got %g", b.Size)
	}
	if b.X < 0 || b.X+b.Size > pf.Width {
		return invalidf("bird.x (%g) must keep the bird inside the playfield", b.X)
	}
	if b.StartY < 0 || b.StartY > pf.Height-b.Size {
		return invalidf("bird.start_y (%g) must be within [0, %g]", b.StartY, pf.Height-b.Size)
	}

	o := c.Obstacles
	if o.Width <= 0 {
		return invalidf("obstacles.width must be positive, got %g", o.Width)
	}
	if o.GapHeight < b.Size {
		return invalidf("obstacles.gap_height (%g) must fit the bird (%g)", o.GapHeight, b.Size)
	}
	if o.MinSegment < 0 {
		return invalidf("obstacles.min_segment must not be negative, got %g", o.MinSegment)
	}
	if o.GapHeight+2*o.MinSegment > pf.Height {
		return invalidf("obstacles.gap_height (%g) plus two min_segment (%g) exceeds playfield height (%g)",
			o.GapHeight, o.MinSegment, pf.Height)
	}
	if o.SpawnInterval <= 0 {
		return invalidf("obstacles.spawn_interval must be positive, got %d", o.SpawnInterval)
	}
	if o.LeadDistance < 0 {
		return invalidf("obstacles.lead_distance must not be negative, got %g", o.LeadDistance)
	}

	p := c.Pose
	if p.AscendThreshold < 0 || p.DescendThreshold > 1 {
		return invalidf("pose thresholds must be within [0, 1], got %g and %g", p.AscendThreshold, p.DescendThreshold)
	}
	if p.AscendThreshold >= p.DescendThreshold {
		return invalidf("pose.ascend_threshold (%g) must be below descend_threshold (%g)",
			p.AscendThreshold, p.DescendThreshold)
	}
	if p.Cooldown < 0 {
		return invalidf("pose.cooldown must not be negative, got %s", p.Cooldown)
	}

	return nil
}
