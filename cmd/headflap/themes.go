package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/head-flappy/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List all available themes",
	Long:  `Shows every registered visual theme. Themes only change colors and decorations.`,
	Args:  cobra.NoArgs,
	Run:   runThemes,
}

func runThemes(cmd *cobra.Command, args []string) {
	themes := theme.List()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available themes:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, th := range themes {
		if len(th.ID) > maxIDLen {
			maxIDLen = len(th.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-14s  %s\n", maxIDLen, "ID", "Title", "Decoration")
	fmt.Fprintf(out, "  %-*s  %-14s  %s\n", maxIDLen, "--", "-----", "----------")

	for _, th := range themes {
		fmt.Fprintf(out, "  %-*s  %-14s  %s\n", maxIDLen, th.ID, th.Title, th.Motif)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'headflap play --theme <id>' or press T in game.")
}
