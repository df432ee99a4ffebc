package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
	"github.com/vovakirdan/head-flappy/internal/games/flappy"
	"github.com/vovakirdan/head-flappy/internal/pose"
	"github.com/vovakirdan/head-flappy/internal/theme"
)

// footerRows is the space kept below the game panel for status and help.
const footerRows = 2

// camBg is the background of the pose debug panel.
const camBg core.Color = 236

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Options configures the game host.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig

	// Pose is an optional pose source. Keyboard controls always work.
	Pose pose.Provider

	// InputTTY reads keys from the controlling terminal instead of stdin,
	// for when stdin carries pose samples.
	InputTTY bool

	ShowOverlay   bool
	MirrorOverlay bool

	// ScreenshotDir defaults to ~/.headflap/screenshots.
	ScreenshotDir string
	Logger        *log.Logger
}

// PoseStatusMsg reports a change in the pose provider's state.
type PoseStatusMsg struct {
	Text string
	Err  error
}

// Model is the Bubble Tea model hosting one game.
type Model struct {
	ctrl     *flappy.Controller
	renderer *flappy.Renderer
	interp   *pose.Interpreter
	overlay  *pose.Overlay
	out      *ScreenRenderer

	game *core.Screen
	cam  *core.Screen

	cfg           config.Config
	runtime       core.RuntimeConfig
	keys          KeyMap
	help          help.Model
	logger        *log.Logger
	screenshotDir string

	width, height int
	showOverlay   bool
	hasPose       bool
	poseStatus    string
	notice        string
	quitting      bool
}

// NewModel creates a game host. cfg must already be validated.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// A fixed seed replays the same obstacles on every run; otherwise
	// every run gets a fresh time-based seed.
	seeds := func() int64 { return time.Now().UnixNano() }
	if rt.Seed != 0 {
		seed := rt.Seed
		seeds = func() int64 { return seed }
	}

	ctrl := flappy.NewController(opts.Config, rt.Seed,
		flappy.WithLogger(logger.WithPrefix("game")),
		flappy.WithSeedSource(seeds),
	)
	interp := pose.NewInterpreter(opts.Config.Pose, ctrl,
		pose.WithLogger(logger.WithPrefix("pose")),
	)
	overlay := pose.NewOverlay(interp)
	overlay.Mirror = opts.MirrorOverlay

	dir := opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".headflap", "screenshots")
	}

	poseStatus := "keyboard only"
	if opts.Pose != nil {
		poseStatus = "waiting for pose"
	}

	return Model{
		ctrl:          ctrl,
		renderer:      flappy.NewRenderer(opts.Config, time.Now().UnixNano()),
		interp:        interp,
		overlay:       overlay,
		out:           NewScreenRenderer(),
		game:          core.NewScreen(0, 0),
		cam:           core.NewScreen(0, 0),
		cfg:           opts.Config,
		runtime:       rt,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		logger:        logger,
		screenshotDir: dir,
		showOverlay:   opts.ShowOverlay,
		hasPose:       opts.Pose != nil,
		poseStatus:    poseStatus,
	}
}

// Controller returns the hosted game controller.
func (m Model) Controller() *flappy.Controller {
	return m.ctrl
}

// Interpreter returns the pose interpreter feeding the controller.
func (m Model) Interpreter() *pose.Interpreter {
	return m.interp
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate, m.ctrl.Generation())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case PoseStatusMsg:
		m.poseStatus = msg.Text
		if msg.Err != nil {
			m.poseStatus = "pose error: " + msg.Err.Error()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Ascend):
		m.ctrl.TriggerAscend()

	case key.Matches(msg, m.keys.Descend):
		m.ctrl.TriggerDescend()

	case key.Matches(msg, m.keys.Reset):
		// The new generation orphans the tick already in flight.
		gen := m.ctrl.Reset()
		m.notice = ""
		return m, tickCmd(m.runtime.TickRate, gen)

	case key.Matches(msg, m.keys.NextTheme):
		next := theme.Next(m.ctrl.Theme())
		if err := m.ctrl.SetTheme(next); err != nil {
			m.logger.Warn("theme switch failed", "theme", next, "err", err)
		}

	case key.Matches(msg, m.keys.Overlay):
		m.showOverlay = !m.showOverlay
		m.layout()

	case key.Matches(msg, m.keys.Screenshot):
		m.notice = m.saveScreenshot()
	}

	return m, nil
}

// handleTick advances the simulation by one frame and schedules the next.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.ctrl.Generation() {
		// Scheduled before a reset; the reset started a new chain.
		return m, nil
	}
	if m.game.Empty() {
		// No surface yet: skip the frame entirely.
		return m, tickCmd(m.runtime.TickRate, msg.Gen)
	}

	m.ctrl.Tick()
	return m, tickCmd(m.runtime.TickRate, msg.Gen)
}

// layout sizes the game panel to the playfield's aspect ratio and gives the
// pose panel whatever width remains. Terminal cells are about twice as tall
// as they are wide.
func (m *Model) layout() {
	rows := m.height - footerRows
	if rows <= 0 || m.width <= 0 {
		m.game.Resize(0, 0)
		m.cam.Resize(0, 0)
		return
	}

	pf := m.cfg.Playfield
	cols := int(float64(rows) * pf.Width / pf.Height * 2)
	if cols > m.width {
		cols = m.width
		rows = core.Max(int(float64(cols)/2*pf.Height/pf.Width), 1)
	}
	m.game.Resize(cols, rows)

	camCols := 0
	if m.showOverlay {
		camCols = core.Clamp(m.width-cols-1, 0, rows*4/3*2)
	}
	if camCols < 8 {
		camCols = 0
	}
	m.cam.Resize(camCols, rows)
}

// saveScreenshot writes the current game panel as plain text.
func (m Model) saveScreenshot() string {
	if m.game.Empty() {
		return "nothing to capture yet"
	}
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return "screenshot failed"
	}

	name := fmt.Sprintf("headflap_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.screenshotDir, name)
	if err := os.WriteFile(path, []byte(m.game.String()+"\n"), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.game.Empty() {
		return "starting..."
	}

	snap := m.ctrl.Snapshot()
	th, err := theme.Lookup(snap.Theme)
	if err != nil {
		th, _ = theme.Lookup(theme.DefaultID)
	}
	m.renderer.Render(m.game, snap, th)
	body := m.out.Render(m.game)

	if m.showOverlay && !m.cam.Empty() {
		m.cam.FillCell(core.Cell{Rune: ' ', Fg: core.ColorDefault, Bg: camBg})
		m.overlay.Draw(m.cam)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.out.Render(m.cam))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.statusLine(snap),
		m.help.View(m.keys),
	)
}

func (m Model) statusLine(snap flappy.Snapshot) string {
	line := fmt.Sprintf("score %d · %s · theme %s · %s", snap.Score, snap.Phase, snap.Theme, m.poseStatus)
	if m.hasPose {
		line += " · " + m.overlay.Label()
	}
	if m.notice != "" {
		return statusStyle.Render(line) + "  " + noticeStyle.Render(m.notice)
	}
	return statusStyle.Render(line)
}

// Run starts the Bubble Tea program and, if configured, the pose provider.
// Pose samples are fed straight to the interpreter from the provider's
// goroutine; the controller queues them for the next tick.
func Run(opts Options) error {
	model := NewModel(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(model, progOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.Pose != nil {
		interp := model.Interpreter()
		logger := model.logger
		go func() {
			connected := false
			err := opts.Pose.Run(ctx, func(s pose.Sample) {
				if !connected {
					connected = true
					p.Send(PoseStatusMsg{Text: "pose connected"})
				}
				interp.Feed(s)
			})
			if err != nil {
				logger.Warn("pose provider stopped", "err", err)
				p.Send(PoseStatusMsg{Err: err})
				return
			}
			if ctx.Err() == nil {
				p.Send(PoseStatusMsg{Text: "pose stream ended"})
			}
		}()
	}

	_, err := p.Run()
	return err
}
