package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pipeshot/internal/level"
	"github.com/vovakirdan/pipeshot/internal/platform/tui"
	"github.com/vovakirdan/pipeshot/internal/storage"
)

var (
	flagStatsTUI bool
	flagReset    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [level]",
	Short: "Show shot statistics",
	Long: `Display shots fired, wins and the fewest steps of a winning shot per
level. With a level, also list its most recent shots.

Examples:
  pipeshot stats
  pipeshot stats 01-first-bend
  pipeshot stats --tui
  pipeshot stats 01-first-bend --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Open the interactive statistics screen")
	statsCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the recorded shots (of the given level, or all)")
}

func runStats(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening shots database: %v", err)
	}
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if l, err := level.Find(flagLevelsDir, levelID); err == nil {
			levelID = l.ID
		}
	}

	if flagReset {
		if err := store.ClearShots(levelID); err != nil {
			fail("%v", err)
		}
		fmt.Println("Shots cleared.")
		return
	}

	if flagStatsTUI {
		levels, err := level.Collection(flagLevelsDir)
		if err != nil {
			fail("%v", err)
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunStats(store, levels, levelID, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	if levelID != "" {
		printLevelStats(store, levelID)
		return
	}

	all, err := store.AllLevelStats()
	if err != nil {
		fail("%v", err)
	}
	if len(all) == 0 {
		fmt.Println("No shots recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pipeshot play' to fire the first one!")
		return
	}

	fmt.Println("Shot Statistics")
	fmt.Println()
	fmt.Printf("  %-24s  %5s  %4s  %4s  %s\n", "Level", "Shots", "Wins", "Best", "Last played")
	fmt.Printf("  %-24s  %5s  %4s  %4s  %s\n", "-----", "-----", "----", "----", "-----------")
	for _, st := range all {
		fmt.Printf("  %-24s  %5d  %4d  %4s  %s\n", st.LevelID, st.Attempts, st.Wins, best(st), st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printLevelStats(store *storage.Store, levelID string) {
	st, err := store.LevelStats(levelID)
	if err != nil {
		fail("%v", err)
	}
	shots, err := store.RecentShots(levelID, 10)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Shot Statistics - %s\n", levelID)
	fmt.Println()
	fmt.Printf("  Shots: %d  Wins: %d  Best: %s\n", st.Attempts, st.Wins, best(st))
	if len(shots) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-6s  %5s  %-16s  %s\n", "#", "Result", "Steps", "Reason", "Date")
	fmt.Printf("  %-4s  %-6s  %5s  %-16s  %s\n", "-", "------", "-----", "------", "----")
	for i, s := range shots {
		result := "lost"
		if s.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-6s  %5d  %-16s  %s\n", i+1, result, s.Steps, s.Reason, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func best(st storage.LevelStats) string {
	if st.BestSteps == 0 {
		return "-"
	}
	return fmt.Sprint(st.BestSteps)
}
