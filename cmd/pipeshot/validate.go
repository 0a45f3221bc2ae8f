package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pipeshot/internal/level"
	"github.com/vovakirdan/pipeshot/internal/level/formats"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a level file or directory",
	Long: `Parse level files and check them: size, objects inside the field, no
overlaps, a cannon that does not face straight out, and that some arrangement
of the pipes reaches the goal.

Examples:
  pipeshot validate ./levels/my-level.map
  pipeshot validate ./levels`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	logger := newStderrLogger()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	files, err := levelFiles(args[0])
	if err != nil {
		fail("%v", err)
	}
	if len(files) == 0 {
		fail("no level files in %s", args[0])
	}

	loader := level.NewLoader(filepath.Dir(args[0]))
	failed := 0
	for _, path := range files {
		l, err := loader.LoadFile(path)
		if err == nil {
			err = level.Validate(l, cfg.Ball.MaxSteps)
		}
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", path, err)
			continue
		}
		logger.Debug("level ok", "level", l.ID, "path", path)
		fmt.Printf("ok    %s (%s)\n", path, l.Title())
	}

	fmt.Println()
	fmt.Printf("%d of %d levels valid\n", len(files)-failed, len(files))
	if failed > 0 {
		os.Exit(1)
	}
}

// levelFiles returns path itself, or every level file below it.
func levelFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := strings.ToLower(filepath.Ext(p))
		if !d.IsDir() && slices.Contains(formats.FormatExtensions(), ext) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}
