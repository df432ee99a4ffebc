package pose

import (
	"github.com/vovakirdan/head-flappy/internal/core"
)

// Overlay glyphs
const (
	ThresholdChar = '╌'
	MarkerChar    = '●'
)

// Overlay draws the debug view of the interpreter: both threshold lines, a
// marker at the nose and a status label. Drawing never feeds back into
// intent computation.
type Overlay struct {
	interp *Interpreter

	// Mirror flips X so the marker moves like a mirror image of the player.
	Mirror bool

	label     string
	labelZone Zone
}

// NewOverlay creates an overlay bound to an interpreter.
func NewOverlay(interp *Interpreter) *Overlay {
	return &Overlay{
		interp:    interp,
		label:     statusLabel(ZoneUnknown),
		labelZone: ZoneUnknown,
	}
}

// ZoneColor returns the marker color for a zone.
func ZoneColor(z Zone) core.Color {
	switch z {
	case ZoneAscend:
		return core.ColorBrightGreen
	case ZoneDescend:
		return core.ColorBrightRed
	case ZoneNeutral:
		return core.ColorBrightYellow
	default:
		return core.ColorGray
	}
}

func statusLabel(z Zone) string {
	switch z {
	case ZoneAscend:
		return "▲ FLAP"
	case ZoneDescend:
		return "▼ DIVE"
	case ZoneNeutral:
		return "● HOLD"
	default:
		return "no face"
	}
}

// Label returns the current status label. It is rebuilt only when the zone
// changes.
func (o *Overlay) Label() string {
	zone := o.interp.Zone()
	if zone != o.labelZone {
		o.label = statusLabel(zone)
		o.labelZone = zone
	}
	return o.label
}

// Draw paints the overlay onto dst, which represents the camera frame.
func (o *Overlay) Draw(dst *core.Screen) {
	if dst.Empty() {
		return
	}
	w, h := dst.Width(), dst.Height()
	ascend, descend := o.interp.Thresholds()

	dst.DrawHLine(0, fracToCell(ascend, h), w, ThresholdChar, core.ColorBrightGreen)
	dst.DrawHLine(0, fracToCell(descend, h), w, ThresholdChar, core.ColorBrightRed)

	label := o.Label()
	if s, ok := o.interp.Last(); ok {
		x := s.X
		if o.Mirror {
			x = 1 - x
		}
		dst.SetColored(fracToCell(x, w), fracToCell(s.Y, h), MarkerChar, ZoneColor(o.labelZone))
	}
	dst.DrawTextColored(1, h-1, label, ZoneColor(o.labelZone))
}

// fracToCell maps a [0,1] fraction onto [0, n-1].
func fracToCell(f float64, n int) int {
	return core.Clamp(int(f*float64(n)), 0, n-1)
}
