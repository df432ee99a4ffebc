package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
	"github.com/vovakirdan/head-flappy/internal/games/flappy"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(Options{
		Config:        config.DefaultConfig(),
		Runtime:       core.RuntimeConfig{TickRate: 60, Seed: 42},
		ScreenshotDir: t.TempDir(),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func sized(t *testing.T) Model {
	t.Helper()
	m, _ := update(t, newTestModel(t), tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(m Model) TickMsg {
	return TickMsg{Gen: m.Controller().Generation(), Time: time.Now()}
}

func TestLayoutKeepsAspect(t *testing.T) {
	m := sized(t)

	// 38 rows * 320/480 * 2 = 50 columns
	if m.game.Width() != 50 || m.game.Height() != 38 {
		t.Errorf("game panel = %dx%d, expected 50x38", m.game.Width(), m.game.Height())
	}
	if !m.cam.Empty() {
		t.Error("pose panel should be hidden by default")
	}

	m, _ = update(t, m, keyMsg("o"))
	if m.cam.Empty() || m.cam.Height() != 38 {
		t.Errorf("pose panel = %dx%d after toggle", m.cam.Width(), m.cam.Height())
	}
}

func TestLayoutNarrowTerminal(t *testing.T) {
	m, _ := update(t, newTestModel(t), tea.WindowSizeMsg{Width: 30, Height: 40})
	if m.game.Width() != 30 {
		t.Errorf("width = %d, expected 30", m.game.Width())
	}
	if m.game.Height() >= 38 {
		t.Errorf("height = %d, expected it to shrink with the width", m.game.Height())
	}
}

func TestTickSkippedWithoutSurface(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tick(m))
	if cmd == nil {
		t.Fatal("skipped tick should still reschedule")
	}
	if got := m.Controller().Snapshot().Ticks; got != 0 {
		t.Errorf("controller ticked %d times without a surface", got)
	}
}

func TestKeyboardStartsRun(t *testing.T) {
	m := sized(t)

	m, _ = update(t, m, keyMsg(" "))
	m, cmd := update(t, m, tick(m))
	if cmd == nil {
		t.Error("tick should schedule the next frame")
	}
	if m.Controller().Phase() != flappy.PhaseRunning {
		t.Errorf("phase = %s, expected Running", m.Controller().Phase())
	}

	m, _ = update(t, m, keyMsg("s"))
	update(t, m, tick(m))
	cfg := config.DefaultConfig()
	want := cfg.Physics.DescendVelocity + cfg.Physics.Gravity
	if v := m.Controller().Snapshot().BirdVelocity; v != want {
		t.Errorf("velocity = %v after dive, expected %v", v, want)
	}
}

func TestStaleTickDroppedAfterReset(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, keyMsg(" "))

	stale := tick(m)
	m, cmd := update(t, m, keyMsg("r"))
	if cmd == nil {
		t.Fatal("reset should reschedule the loop")
	}
	if m.Controller().Generation() == stale.Gen {
		t.Fatal("reset did not advance the generation")
	}

	before := m.Controller().Snapshot().Ticks
	m, cmd = update(t, m, stale)
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
	if got := m.Controller().Snapshot().Ticks; got != before {
		t.Error("stale tick reached the controller")
	}
	if m.Controller().Phase() != flappy.PhaseIdle {
		t.Errorf("phase = %s, expected Idle", m.Controller().Phase())
	}

	update(t, m, tick(m))
	if got := m.Controller().Snapshot().Ticks; got != before+1 {
		t.Error("current-generation tick was not applied")
	}
}

func TestThemeKeyCycles(t *testing.T) {
	m := sized(t)
	first := m.Controller().Theme()

	m, _ = update(t, m, keyMsg("t"))
	if m.Controller().Theme() == first {
		t.Error("theme did not change")
	}
}

func TestQuitKey(t *testing.T) {
	m := sized(t)
	m, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestViewShowsGameAndHelp(t *testing.T) {
	m := sized(t)
	view := m.View()

	if !strings.Contains(view, "Lift your head to start!") {
		t.Error("idle prompt missing from view")
	}
	if !strings.Contains(view, "flap") || !strings.Contains(view, "quit") {
		t.Error("help line missing from view")
	}
	if !strings.Contains(view, "keyboard only") {
		t.Error("status line missing from view")
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "starting..." {
		t.Errorf("View() = %q", got)
	}
}

func TestPoseStatusMsg(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, PoseStatusMsg{Text: "pose connected"})
	if !strings.Contains(m.View(), "pose connected") {
		t.Error("pose status not shown")
	}
}

func TestScreenshot(t *testing.T) {
	m := sized(t)
	dir := m.screenshotDir

	m, _ = update(t, m, keyMsg("ctrl+s"))
	if !strings.HasPrefix(m.notice, "saved ") {
		t.Fatalf("notice = %q", m.notice)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d screenshots, expected 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(strings.Split(strings.TrimRight(string(data), "\n"), "\n")) != m.game.Height() {
		t.Error("screenshot should have one line per row")
	}
}
