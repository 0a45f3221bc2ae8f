package game

import (
	"slices"

	"github.com/vovakirdan/pipeshot/internal/engine"
	"github.com/vovakirdan/pipeshot/internal/level"
)

// Status is the current phase of the game.
type Status string

const (
	StatusPlaying     Status = "playing"
	StatusFlying      Status = "flying"
	StatusCleared     Status = "level_cleared"
	StatusComplete    Status = "campaign_complete"
	StatusPausedSmall Status = "paused_small_window"
)

// BallState is a ball in flight as of its latest transition.
type BallState struct {
	ID   string
	Cell engine.Coord
	Dir  engine.Dir
}

// Snapshot captures the game state for tests and debugging.
type Snapshot struct {
	Tick     uint64 // Step calls since Reset; level changes keep counting
	Level    int // 1-indexed for display
	LevelID  string
	Cursor   engine.Coord
	Carrying bool
	Carried  engine.PipeType
	Pipes    []level.PipeSpot
	Balls    []BallState
	Fired    int
	Lost     int
	Status   Status
	Message  string
}

// Status returns the current phase.
func (g *Game) Status() Status {
	switch {
	case g.tooSmall:
		return StatusPausedSmall
	case g.done:
		return StatusComplete
	case g.cleared:
		return StatusCleared
	case len(g.shots) > 0:
		return StatusFlying
	default:
		return StatusPlaying
	}
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Level:    g.index + 1,
		LevelID:  g.level.ID,
		Cursor:   g.cursor,
		Carrying: g.carry != nil,
		Pipes:    slices.Clone(g.level.Pipes),
		Fired:    g.fired,
		Lost:     g.lost,
		Status:   g.Status(),
		Message:  g.message,
	}
	if g.carry != nil {
		s.Carried = g.carry.pipe
	}
	for _, sh := range g.shots {
		b := sh.flight.Ball()
		s.Balls = append(s.Balls, BallState{ID: b.ID, Cell: b.Pos, Dir: b.Dir})
	}
	return s
}
