package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipeshot/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels",
	Long: `Shows the built-in campaign, or the levels found in --levels.

Examples:
  pipeshot levels
  pipeshot levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels, err := level.Collection(flagLevelsDir)
	if err != nil {
		fail("%v", err)
	}

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %3s  %-*s  %-7s  %5s  %s\n", "#", maxIDLen, "ID", "Size", "Pipes", "Title")
	fmt.Printf("  %3s  %-*s  %-7s  %5s  %s\n", "-", maxIDLen, "--", "----", "-----", "-----")
	for i, l := range levels {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %3d  %-*s  %-7s  %5d  %s\n", i+1, maxIDLen, l.ID, size, len(l.Pipes), l.Title())
	}

	fmt.Println()
	fmt.Println("Run 'pipeshot play <id>' to play a level.")
}
