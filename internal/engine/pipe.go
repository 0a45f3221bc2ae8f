package engine

import (
	"fmt"
	"strings"
)

// PipeType names the quarter-circle bend a pipe draws inside its cell.
// A pipe named <Side><Vertical> has its arc centered on that corner of the cell.
type PipeType uint8

const (
	PipeRightDown PipeType = iota // ╭
	PipeLeftDown                  // ╮
	PipeLeftUp                    // ╯
	PipeRightUp                   // ╰
)

// String returns the string representation of a pipe type.
func (p PipeType) String() string {
	switch p {
	case PipeRightDown:
		return "RightDown"
	case PipeLeftDown:
		return "LeftDown"
	case PipeLeftUp:
		return "LeftUp"
	case PipeRightUp:
		return "RightUp"
	default:
		return "Unknown"
	}
}

// Glyph returns the box-drawing rune used for the pipe in level maps.
func (p PipeType) Glyph() rune {
	switch p {
	case PipeRightDown:
		return '╭'
	case PipeLeftDown:
		return '╮'
	case PipeLeftUp:
		return '╯'
	case PipeRightUp:
		return '╰'
	default:
		return '?'
	}
}

// Rotate returns the pipe turned a quarter clockwise: ╭ → ╮ → ╯ → ╰ → ╭.
func (p PipeType) Rotate() PipeType {
	switch p {
	case PipeRightDown:
		return PipeLeftDown
	case PipeLeftDown:
		return PipeLeftUp
	case PipeLeftUp:
		return PipeRightUp
	case PipeRightUp:
		return PipeRightDown
	}
	panic(fmt.Sprintf("engine: unknown pipe type %d", p))
}

// Valid reports whether p is one of the four defined pipe types.
func (p PipeType) Valid() bool {
	return p <= PipeRightUp
}

// AllPipeTypes returns the four pipe types in rotation order.
func AllPipeTypes() []PipeType {
	return []PipeType{PipeRightDown, PipeLeftDown, PipeLeftUp, PipeRightUp}
}

// ParsePipeType converts a name ("LeftDown", "left_down", "ld") or glyph to a PipeType.
func ParsePipeType(s string) (PipeType, bool) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	switch key {
	case "rightdown", "rd", "╭":
		return PipeRightDown, true
	case "leftdown", "ld", "╮":
		return PipeLeftDown, true
	case "leftup", "lu", "╯":
		return PipeLeftUp, true
	case "rightup", "ru", "╰":
		return PipeRightUp, true
	default:
		return PipeRightDown, false
	}
}

// Redirect returns the direction a ball leaves pipe p with when it enters
// travelling in direction d. ok is false when the ball hits the pipe from one of
// its two dead sides.
func Redirect(p PipeType, d Dir) (out Dir, ok bool) {
	switch p {
	// → ╮    ← ╮
	//   ↓      ↑
	case PipeLeftDown:
		if d == DirRight {
			return DirDown, true
		} else if d == DirUp {
			return DirLeft, true
		}

	// ╭ ←    ╭ →
	// ↓      ↑
	case PipeRightDown:
		if d == DirLeft {
			return DirDown, true
		} else if d == DirUp {
			return DirRight, true
		}

	//   ↑      ↓
	// → ╯    ← ╯
	case PipeLeftUp:
		if d == DirRight {
			return DirUp, true
		} else if d == DirDown {
			return DirLeft, true
		}

	// ↑      ↓
	// ╰ ←    ╰ →
	case PipeRightUp:
		if d == DirLeft {
			return DirUp, true
		} else if d == DirDown {
			return DirRight, true
		}

	default:
		panic(fmt.Sprintf("engine: unknown pipe type %d", p))
	}

	return d, false
}

// Entries returns the two travel directions a pipe accepts.
func Entries(p PipeType) [2]Dir {
	var entries [2]Dir
	n := 0
	for _, d := range AllDirs() {
		if _, ok := Redirect(p, d); ok {
			entries[n] = d
			n++
		}
	}
	return entries
}

// DeadEntries returns the two travel directions a pipe rejects.
func DeadEntries(p PipeType) [2]Dir {
	var dead [2]Dir
	n := 0
	for _, d := range AllDirs() {
		if _, ok := Redirect(p, d); !ok {
			dead[n] = d
			n++
		}
	}
	return dead
}
