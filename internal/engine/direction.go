// Package engine implements the ball movement and redirection rules of pipeshot.
// It is UI-agnostic and deterministic: for a field snapshot and a ball, every
// transition is decided before anything is animated.
package engine

import (
	"fmt"
	"strings"
)

// Dir is one of the four cardinal travel directions.
// The numeric order (Right, Up, Left, Down) is counter-clockwise on screen and
// is relied upon by the pipe arc geometry.
type Dir uint8

const (
	DirRight Dir = iota
	DirUp
	DirLeft
	DirDown
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirLeft:
		return "Left"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Arrow returns the arrow glyph used for cannons in level maps.
func (d Dir) Arrow() rune {
	switch d {
	case DirRight:
		return '→'
	case DirUp:
		return '↑'
	case DirLeft:
		return '←'
	case DirDown:
		return '↓'
	default:
		return '?'
	}
}

// Velocity returns the unit step (dx, dy) for this direction.
// Up decreases the row, Down increases it (screen coordinates).
func (d Dir) Velocity() (dx, dy int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	}
	panic(fmt.Sprintf("engine: unknown direction %d", d))
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirLeft:
		return DirRight
	case DirDown:
		return DirUp
	}
	panic(fmt.Sprintf("engine: unknown direction %d", d))
}

// Valid reports whether d is one of the four defined directions.
func (d Dir) Valid() bool {
	return d <= DirDown
}

// AllDirs returns the four directions in numeric order.
func AllDirs() []Dir {
	return []Dir{DirRight, DirUp, DirLeft, DirDown}
}

// ParseDir converts a name ("right", "r") or arrow glyph to a Dir.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r", "→":
		return DirRight, true
	case "up", "u", "↑":
		return DirUp, true
	case "left", "l", "←":
		return DirLeft, true
	case "down", "d", "↓":
		return DirDown, true
	default:
		return DirRight, false
	}
}
