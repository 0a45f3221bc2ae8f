package engine

import "fmt"

// Kind tags what occupies a grid cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindWall
	KindPit
	KindGoal
	KindCannon
	KindPipe
	KindOutside // sentinel for coordinates beyond the field
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindWall:
		return "Wall"
	case KindPit:
		return "Pit"
	case KindGoal:
		return "Goal"
	case KindCannon:
		return "Cannon"
	case KindPipe:
		return "Pipe"
	case KindOutside:
		return "Outside"
	default:
		return "Unknown"
	}
}

// Content is the tagged value stored in a cell. Pipe is meaningful only when
// Kind is KindPipe.
type Content struct {
	Kind Kind
	Pipe PipeType
}

// Empty returns an empty cell.
func Empty() Content { return Content{Kind: KindEmpty} }

// Wall returns a wall cell.
func Wall() Content { return Content{Kind: KindWall} }

// Pit returns a pit cell.
func Pit() Content { return Content{Kind: KindPit} }

// Goal returns the goal cell.
func Goal() Content { return Content{Kind: KindGoal} }

// Cannon returns the cannon origin cell.
func Cannon() Content { return Content{Kind: KindCannon} }

// Pipe returns a cell holding a pipe of type p.
func Pipe(p PipeType) Content { return Content{Kind: KindPipe, Pipe: p} }

// Outside returns the out-of-bounds sentinel.
func Outside() Content { return Content{Kind: KindOutside} }

// IsPipe reports whether the cell holds a pipe.
func (c Content) IsPipe() bool {
	return c.Kind == KindPipe
}

// String returns a string representation of the content.
func (c Content) String() string {
	if c.Kind == KindPipe {
		return fmt.Sprintf("Pipe(%s)", c.Pipe)
	}
	return c.Kind.String()
}

// Field answers what occupies a cell. Implementations must be total over all
// integer coordinates (returning Outside beyond the field) and safe for
// concurrent use by several in-flight balls.
type Field interface {
	At(c Coord) Content
}

// FieldFunc adapts an ordinary function to the Field interface.
type FieldFunc func(c Coord) Content

// At calls f(c).
func (f FieldFunc) At(c Coord) Content {
	return f(c)
}
