// Package level provides the level model, loading, validation, solving and
// the built-in campaign for pipeshot.
package level

import (
	"maps"
	"slices"

	"github.com/vovakirdan/pipeshot/internal/engine"
	"github.com/vovakirdan/pipeshot/internal/level/formats"
)

// PipeSpot is a pipe and the cell it sits in.
type PipeSpot = formats.PipeSpot

// Level represents a complete level definition.
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
	Roads    []engine.Coord // decoration only; the ball rolls over them
	Metadata map[string]string
	FilePath string
}

func fromParsed(p formats.Level, path string) Level {
	return Level{
		ID:       p.ID,
		Name:     p.Name,
		Width:    p.Width,
		Height:   p.Height,
		Cannon:   p.Cannon,
		Goal:     p.Goal,
		Pipes:    p.Pipes,
		Walls:    p.Walls,
		Pits:     p.Pits,
		Roads:    p.Roads,
		Metadata: p.Metadata,
		FilePath: path,
	}
}

func (l Level) parsed() formats.Level {
	return formats.Level{
		ID:       l.ID,
		Name:     l.Name,
		Width:    l.Width,
		Height:   l.Height,
		Cannon:   l.Cannon,
		Goal:     l.Goal,
		Pipes:    l.Pipes,
		Walls:    l.Walls,
		Pits:     l.Pits,
		Roads:    l.Roads,
		Metadata: l.Metadata,
	}
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	out := l
	out.Pipes = slices.Clone(l.Pipes)
	out.Walls = slices.Clone(l.Walls)
	out.Pits = slices.Clone(l.Pits)
	out.Roads = slices.Clone(l.Roads)
	out.Metadata = maps.Clone(l.Metadata)
	return out
}

// Board builds the engine field for the level as currently arranged.
func (l Level) Board() *engine.Board {
	b := engine.NewBoard(l.Width, l.Height)
	for _, c := range l.Walls {
		b.Set(c, engine.Wall())
	}
	for _, c := range l.Pits {
		b.Set(c, engine.Pit())
	}
	for _, p := range l.Pipes {
		b.Set(p.Cell, engine.Pipe(p.Type))
	}
	b.Set(l.Goal, engine.Goal())
	b.Set(l.Cannon.Pos, engine.Cannon())
	return b
}

// PipeIndex returns the index in l.Pipes of the pipe at c, or -1.
func (l Level) PipeIndex(c engine.Coord) int {
	for i, p := range l.Pipes {
		if p.Cell == c {
			return i
		}
	}
	return -1
}

// IsRoad reports whether c is a road cell.
func (l Level) IsRoad(c engine.Coord) bool {
	return slices.Contains(l.Roads, c)
}

// CanHoldPipe reports whether a pipe may be dropped on c: the cell must be
// inside the field and hold nothing but, at most, a road.
func (l Level) CanHoldPipe(c engine.Coord) bool {
	if c.Col < 0 || c.Col >= l.Width || c.Row < 0 || c.Row >= l.Height {
		return false
	}
	return l.Board().At(c).Kind == engine.KindEmpty
}
