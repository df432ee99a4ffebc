package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/head-flappy/internal/core"
)

type cellStyle struct {
	fg, bg core.Color
}

// ScreenRenderer converts Screens to styled strings, caching one lipgloss
// style per color pair. It is not safe for concurrent use.
type ScreenRenderer struct {
	styles map[cellStyle]lipgloss.Style
}

// NewScreenRenderer creates a renderer with an empty style cache.
func NewScreenRenderer() *ScreenRenderer {
	return &ScreenRenderer{styles: make(map[cellStyle]lipgloss.Style)}
}

func (r *ScreenRenderer) style(cs cellStyle) lipgloss.Style {
	if st, ok := r.styles[cs]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if !cs.fg.IsDefault() {
		st = st.Foreground(lipgloss.Color(strconv.Itoa(int(cs.fg))))
	}
	if !cs.bg.IsDefault() {
		st = st.Background(lipgloss.Color(strconv.Itoa(int(cs.bg))))
	}
	r.styles[cs] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colors are grouped into one styled run.
func (r *ScreenRenderer) Render(s *core.Screen) string {
	if s.Empty() {
		return ""
	}

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellStyle{fg: cell.Fg, bg: cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Fg != start.fg || cell.Bg != start.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.fg.IsDefault() && start.bg.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen converts a Screen with a fresh style cache.
func RenderScreen(s *core.Screen) string {
	return NewScreenRenderer().Render(s)
}
