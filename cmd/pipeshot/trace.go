package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipeshot/internal/engine"
	"github.com/vovakirdan/pipeshot/internal/level"
)

var (
	flagSolve    bool
	flagSegments bool
)

var traceCmd = &cobra.Command{
	Use:   "trace <level>",
	Short: "Run a shot headlessly and print its path",
	Long: `Fire the cannon of a level without the UI and print every cell the ball
visits, how the shot ended and the board with the path drawn on it.

With --solve the pipes are first arranged by the solver, so the trace shows
a winning shot and the moves that make it.

Examples:
  pipeshot trace 01-first-bend
  pipeshot trace 4 --solve
  pipeshot trace 2 --segments`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().BoolVar(&flagSolve, "solve", false, "Arrange the pipes with the solver first")
	traceCmd.Flags().BoolVar(&flagSegments, "segments", false, "Print the motion segments of every step")
	traceCmd.Flags().StringVar(&flagSpeed, "speed", "", "Ball speed preset: slow, normal, fast, instant")
}

func runTrace(_ *cobra.Command, args []string) {
	logger := newStderrLogger()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	l, err := level.Find(flagLevelsDir, args[0])
	if err != nil {
		fail("%v", err)
	}

	if flagSolve {
		sol, err := level.Solve(l, cfg.Ball.MaxSteps)
		if err != nil {
			fail("cannot solve %s: %v", l.ID, err)
		}
		logger.Debug("solved", "level", l.ID, "changes", sol.Changes(l))
		printPlacements(l, sol)
		l = sol.Level
	}

	tr := engine.Run(l.Board(), l.Cannon.Fire(), cfg.EngineOptions())
	logger.Debug("traced", "level", l.ID, "state", tr.State, "reason", tr.Reason, "steps", tr.Steps)

	fmt.Println(level.RenderASCII(l, tr.Path))
	fmt.Println()
	fmt.Printf("Path: %s\n", formatPath(tr.Path))

	outcome := "WON"
	if !tr.Won() {
		outcome = fmt.Sprintf("LOST (%s)", tr.Reason)
	}
	fmt.Printf("Outcome: %s after %d steps, %s of animation\n", outcome, tr.Steps, tr.Duration())

	if flagSegments {
		fmt.Println()
		for _, t := range tr.Transitions {
			fmt.Printf("  %3d  %-6s %s -> %s\n", t.Step, t.Event, t.From.Pos, t.Ball.Pos)
			for _, s := range t.Segments {
				fmt.Printf("         %-6s cell %s  %s -> %s  %s\n", s.Kind, s.Cell, s.From, s.To, s.Duration)
			}
		}
	}
}

func printPlacements(original level.Level, sol level.Solution) {
	fmt.Printf("Solution (%d of %d pipes changed):\n", sol.Changes(original), len(sol.Placements))
	for i, p := range sol.Placements {
		was := original.Pipes[i].Type.Glyph()
		switch {
		case p.Moved():
			fmt.Printf("  move %c %s -> %s as %c\n", was, p.From, p.To, p.Type.Glyph())
		case p.Type != original.Pipes[i].Type:
			fmt.Printf("  turn %c at %s into %c\n", was, p.From, p.Type.Glyph())
		default:
			fmt.Printf("  keep %c at %s\n", was, p.From)
		}
	}
	fmt.Println()
}

func formatPath(path []engine.Coord) string {
	cells := make([]string, len(path))
	for i, c := range path {
		cells[i] = c.String()
	}
	return strings.Join(cells, " ")
}
