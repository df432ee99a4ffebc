package pose

import (
	"strings"
	"testing"

	"github.com/vovakirdan/head-flappy/internal/core"
)

func TestOverlayThresholdLines(t *testing.T) {
	in := NewInterpreter(defaultPose(), nil)
	ov := NewOverlay(in)
	screen := core.NewScreen(20, 50)

	ov.Draw(screen)

	asc := screen.GetCell(5, fracToCell(0.42, 50))
	if asc.Rune != ThresholdChar || asc.Fg != core.ColorBrightGreen {
		t.Errorf("ascend line cell = %+v", asc)
	}
	desc := screen.GetCell(5, fracToCell(0.58, 50))
	if desc.Rune != ThresholdChar || desc.Fg != core.ColorBrightRed {
		t.Errorf("descend line cell = %+v", desc)
	}
	if !strings.Contains(screen.Row(49), "no face") {
		t.Errorf("status row = %q", screen.Row(49))
	}
}

func TestOverlayMarkerFollowsZone(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		color core.Color
		label string
	}{
		{"ascend", 0.1, core.ColorBrightGreen, "FLAP"},
		{"neutral", 0.5, core.ColorBrightYellow, "HOLD"},
		{"descend", 0.9, core.ColorBrightRed, "DIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInterpreter(defaultPose(), nil)
			ov := NewOverlay(in)
			screen := core.NewScreen(20, 50)

			in.Interpret(At(0.25, tt.y), epoch)
			ov.Draw(screen)

			cell := screen.GetCell(fracToCell(0.25, 20), fracToCell(tt.y, 50))
			if cell.Rune != MarkerChar || cell.Fg != tt.color {
				t.Errorf("marker cell = %+v, expected %q in %d", cell, MarkerChar, tt.color)
			}
			if !strings.Contains(ov.Label(), tt.label) {
				t.Errorf("label = %q, expected %q", ov.Label(), tt.label)
			}
		})
	}
}

func TestOverlayMirror(t *testing.T) {
	in := NewInterpreter(defaultPose(), nil)
	ov := NewOverlay(in)
	ov.Mirror = true
	screen := core.NewScreen(20, 10)

	in.Interpret(At(0.25, 0.5), epoch)
	ov.Draw(screen)

	if screen.Get(fracToCell(0.75, 20), 5) != MarkerChar {
		t.Errorf("mirrored marker missing, row = %q", screen.Row(5))
	}
}

func TestOverlayDoesNotChangeIntent(t *testing.T) {
	in := NewInterpreter(defaultPose(), nil)
	ov := NewOverlay(in)
	screen := core.NewScreen(20, 10)

	in.Interpret(At(0.5, 0.1), epoch)
	for i := 0; i < 5; i++ {
		ov.Draw(screen)
	}
	// Still cooling down: drawing must not have consumed or reset anything
	if got := in.Interpret(At(0.5, 0.1), epoch); got != core.IntentNone {
		t.Errorf("got %s", got)
	}
}

func TestOverlayEmptyScreen(t *testing.T) {
	ov := NewOverlay(NewInterpreter(defaultPose(), nil))
	ov.Draw(core.NewScreen(0, 0))
	ov.Draw(nil)
}
