// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

// PipeSpot is a pipe placed on the level at load time.
type PipeSpot struct {
	Cell engine.Coord
	Type engine.PipeType
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Cannon   engine.Launcher
	Goal     engine.Coord
	Pipes    []PipeSpot
	Walls    []engine.Coord
	Pits     []engine.Coord
	Roads    []engine.Coord
	Metadata map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".map", ".txt"}
}

// Parse routes data to the parser for the given file extension.
func Parse(data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".map", ".txt":
		return ParseGlyphs(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
