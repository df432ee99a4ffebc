package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
	"github.com/vovakirdan/head-flappy/internal/platform/tui"
	"github.com/vovakirdan/head-flappy/internal/pose"
	"github.com/vovakirdan/head-flappy/internal/theme"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTheme      string
	flagPose       string
	flagOverlay    bool
	flagMirror     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game in the terminal.

Controls:
  Space/Up   - Flap
  Down/S     - Dive
  R          - Reset
  T          - Next theme
  O          - Toggle pose view
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Pose sources (--pose):
  stdin            - JSON lines on standard input
  <file>           - A JSON-lines recording, played back at its timestamps
  <fifo>           - A named pipe streaming JSON lines
  ws://host:port   - Listen for browser WebSocket connections on /pose

Each sample is {"x":0.5,"y":0.4}; {} or null means no face found.

Difficulty options:
  easy   - Wider gaps, slower obstacles
  normal - Configuration as loaded
  hard   - Narrower gaps, faster obstacles

Examples:
  headflap play
  headflap play --theme night --difficulty easy
  headflap play --pose ws://127.0.0.1:8787 --overlay
  headflap play --config ./my-headflap.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme ID (see 'headflap themes')")
	playCmd.Flags().StringVar(&flagPose, "pose", "", "Pose source: stdin, <file> or ws://host:port")
	playCmd.Flags().BoolVar(&flagOverlay, "overlay", false, "Show the pose debug view")
	playCmd.Flags().BoolVar(&flagMirror, "mirror", true, "Mirror the pose view horizontally")
}

// loadConfig loads, adjusts and validates the configuration from flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagTheme != "" {
		if !theme.Exists(flagTheme) {
			return cfg, fmt.Errorf("unknown theme %q; run 'headflap themes' to see available themes", flagTheme)
		}
		cfg.Theme = flagTheme
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs a terminal on stdout")
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, inputTTY, closeProvider, err := openPoseSource(flagPose, logger)
	if err != nil {
		return err
	}
	defer closeProvider()

	// Get terminal size for the initial frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger.Info("starting", "theme", cfg.Theme, "difficulty", flagDifficulty, "pose", flagPose, "fps", flagFPS)

	return tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Pose:          provider,
		InputTTY:      inputTTY,
		ShowOverlay:   flagOverlay,
		MirrorOverlay: flagMirror,
		Logger:        logger,
	})
}

// openPoseSource builds the provider named by the --pose flag. inputTTY
// reports that stdin is taken by pose samples, so keys must come from the
// controlling terminal.
func openPoseSource(source string, logger *log.Logger) (p pose.Provider, inputTTY bool, closer func(), err error) {
	closer = func() {}
	switch {
	case source == "":
		return nil, false, closer, nil

	case source == "stdin" || source == "-":
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, false, closer, fmt.Errorf("--pose stdin needs samples piped into stdin")
		}
		return pose.NewReaderProvider(os.Stdin, logger.WithPrefix("pose")), true, closer, nil

	case strings.HasPrefix(source, "ws://"):
		addr := strings.TrimPrefix(source, "ws://")
		addr, _, _ = strings.Cut(addr, "/")
		if addr == "" {
			return nil, false, closer, fmt.Errorf("--pose %s: missing listen address", source)
		}
		return pose.NewWebSocketProvider(addr, logger.WithPrefix("pose")), false, closer, nil

	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, false, closer, fmt.Errorf("open pose source: %w", err)
		}
		info, err := f.Stat()
		if err != nil {
			//nolint:errcheck // Read-only file
			f.Close()
			return nil, false, closer, fmt.Errorf("open pose source: %w", err)
		}

		// A regular file is a recording: play it back at its own pace.
		if info.Mode().IsRegular() {
			defer f.Close()
			samples, err := pose.ReadRecording(f)
			if err != nil {
				return nil, false, closer, err
			}
			return pose.NewScriptedProvider(samples, false), false, closer, nil
		}

		closer = func() {
			//nolint:errcheck // Read-only file
			f.Close()
		}
		return pose.NewReaderProvider(f, logger.WithPrefix("pose")), false, closer, nil
	}
}
