package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pipeshot/internal/core"
	"github.com/vovakirdan/pipeshot/internal/game"
	"github.com/vovakirdan/pipeshot/internal/level"
	"github.com/vovakirdan/pipeshot/internal/platform/tui"
	"github.com/vovakirdan/pipeshot/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Play pipeshot. Without a level the level menu opens; a level can be
given by ID or by its number in the list.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Space/X           - Rotate the pipe under the cursor (or the carried one)
  G/E               - Pick up or put down a pipe
  F/Enter           - Fire the cannon
  R                 - Restart the level
  N/P               - Next/previous level
  Esc/B             - Back to the level menu
  Q/Ctrl+C          - Quit

Pipes are locked while a ball is in flight.

Speed options:
  slow, normal, fast, instant

Examples:
  pipeshot play
  pipeshot play 2
  pipeshot play 05-detour --speed fast
  pipeshot play --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Ball speed preset: slow, normal, fast, instant")
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closer := newFileLogger()
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	levels, err := level.Collection(flagLevelsDir)
	if err != nil {
		fail("%v", err)
	}

	start := -1
	if len(args) == 1 {
		start, err = levelIndex(levels, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'pipeshot levels' to see available levels.")
			os.Exit(1)
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		fmt.Fprintf(os.Stderr, "Warning: could not open shots database: %v\n", err)
		logger.Warn("could not open shots database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	g, err := game.New(levels, cfg)
	if err != nil {
		fail("%v", err)
	}
	defer g.Close()
	g.SetLogger(logger)
	if store != nil {
		g.SetRecorder(store)
	}

	logger.Info("session started", "levels", len(levels), "speed_ms", cfg.Ball.SpeedMS)

	if start >= 0 {
		//nolint:errcheck // index comes from levelIndex
		g.SelectLevel(start)
		goBack, err := tui.Run(g, rc)
		if err != nil {
			fail("%v", err)
		}
		if !goBack {
			return
		}
	}

	runMenuLoop(g, levels, store, rc)
}

// runMenuLoop alternates between the level menu, the game and the stats
// screen until the player quits.
func runMenuLoop(g *game.Game, levels []level.Level, store *storage.Store, rc core.RuntimeConfig) {
	for {
		res, err := tui.RunMenu(levels, store, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = res.Config

		switch {
		case res.Quit:
			return

		case res.WantsStats:
			goBack, err := tui.RunStats(store, levels, "", rc.ScreenW, rc.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}

		case res.Index >= 0:
			if err := g.SelectLevel(res.Index); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			goBack, err := tui.Run(g, rc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}

		default:
			return
		}
	}
}
