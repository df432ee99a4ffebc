package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/head-flappy/internal/games/flappy"
	"github.com/vovakirdan/head-flappy/internal/pose"
	"github.com/vovakirdan/head-flappy/internal/replay"
)

var (
	flagUntilEnd bool
	flagMaxTicks int
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Run a recorded pose session headlessly",
	Long: `Feeds a JSON-lines pose recording through the interpreter and the game
at the configured tick rate, without a terminal, and prints the outcome.

Each line is {"x":0.5,"y":0.4,"t":120}, where t is milliseconds since the
start of the recording. Time is simulated, so a replay with a fixed --seed
always gives the same result.

Examples:
  headflap replay session.jsonl --seed 42
  headflap replay session.jsonl --until-end --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	replayCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	replayCmd.Flags().BoolVar(&flagUntilEnd, "until-end", false, "Keep ticking after the last sample until the run ends")
	replayCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", replay.DefaultMaxTicks, "Upper bound on ticks with --until-end")
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	samples, err := pose.ReadRecording(f)
	if err != nil {
		return err
	}

	res := replay.Run(cfg, samples, replay.Options{
		TickRate: flagFPS,
		Seed:     flagSeed,
		UntilEnd: flagUntilEnd,
		MaxTicks: flagMaxTicks,
		Logger:   logger.WithPrefix("replay"),
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "samples:  %d\n", len(samples))
	fmt.Fprintf(out, "ticks:    %d (%d running)\n", res.Ticks, res.Frames)
	fmt.Fprintf(out, "flaps:    %d\n", res.Ascends)
	fmt.Fprintf(out, "dives:    %d\n", res.Descends)
	fmt.Fprintf(out, "phase:    %s\n", res.Phase)
	if res.Ended != flappy.EndNone {
		fmt.Fprintf(out, "ended by: %s\n", res.Ended)
	}
	fmt.Fprintf(out, "score:    %d\n", res.Score)
	return nil
}
