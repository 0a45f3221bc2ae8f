// pipeshot is a terminal puzzle game: arrange the pipes, fire the cannon and
// roll the ball into the goal.
//
// Usage:
//
//	pipeshot play [level]      - Play the campaign (level menu when no level given)
//	pipeshot levels            - List levels
//	pipeshot trace <level>     - Run a shot headlessly and print its path
//	pipeshot validate <path>   - Validate a level file or directory
//	pipeshot stats [level]     - Show shot statistics
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--db <path>         - Set database path (default: ~/.pipeshot/shots.db)
//	--config <path>     - Use a custom game config YAML
//	--levels <dir>      - Load levels from a directory instead of the campaign
//	--log-file <path>   - Set log file (default: ~/.pipeshot/pipeshot.log)
//	--debug             - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfigPath string
	flagLevelsDir  string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pipeshot",
	Short: "Pipeshot - bend the ball's path into the goal",
	Long: `Pipeshot is a terminal puzzle game. Each level has a cannon, a goal,
walls, pits and a few quarter-circle pipes. Move and rotate the pipes, then
fire: the ball rolls straight, turns in pipes, bounces off walls and is lost
in pits or off the edge of the field.

Available commands:
  play      - Play the campaign or a single level
  levels    - List levels
  trace     - Run a shot without the UI and print its path
  validate  - Check level files for errors and solvability
  stats     - View shot statistics

Examples:
  pipeshot play
  pipeshot play 03-around-the-block
  pipeshot trace 1 --solve
  pipeshot validate ./my-levels
  pipeshot stats --tui`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pipeshot/shots.db", "Path to shots database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (default: ~/.pipeshot/pipeshot.log)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
}

// fail prints an error in the CLI's format and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
