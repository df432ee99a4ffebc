// headflap is a flappy game for the terminal steered by head pose.
//
// Usage:
//
//	headflap play              - Play with the keyboard and an optional pose source
//	headflap themes            - List available themes
//	headflap config            - Print the effective configuration
//	headflap replay <file>     - Run a recorded pose session headlessly
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible obstacles
//	--log-file <path>    - Write logs to a file (the game owns the terminal)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "headflap",
	Short: "Head-pose controlled flappy game for your terminal",
	Long: `headflap is a flappy game you steer by lifting and lowering your head.
Pose samples come from an external estimator (stdin, a file or a browser
over WebSocket); the keyboard always works as well.

Available commands:
  play     - Start the game
  themes   - Show all available themes
  config   - Print the effective configuration
  replay   - Run a recorded pose session without a terminal

Examples:
  headflap play
  headflap play --pose ws://127.0.0.1:8787 --overlay
  mediapipe-nose | headflap play --pose stdin
  headflap replay session.jsonl --until-end`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds the logger from the global flags. The returned closer
// must be called once the command is done.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() {
			//nolint:errcheck // Best-effort close on exit
			f.Close()
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "headflap",
		Level:           level,
	})
	return logger, closer, nil
}
