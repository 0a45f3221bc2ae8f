package level

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

// DefaultSolveBudget caps the number of ball positions Solve examines.
const DefaultSolveBudget = 2_000_000

// defaultSolveSteps bounds the search when no step budget is configured.
const defaultSolveSteps = 100

var (
	// ErrUnsolvable means no arrangement of the pipes wins.
	ErrUnsolvable = errors.New("level: no winning arrangement")
	// ErrSolveBudget means the search stopped before reaching a verdict.
	ErrSolveBudget = errors.New("level: solver budget exhausted")
)

// Placement says where one of the level's pipes ends up.
type Placement struct {
	From engine.Coord
	To   engine.Coord
	Type engine.PipeType
}

// Moved reports whether the pipe leaves its starting cell.
func (p Placement) Moved() bool {
	return p.From != p.To
}

// Solution is a winning arrangement of a level's pipes.
type Solution struct {
	Level      Level       // the level with its pipes rearranged
	Placements []Placement // one per pipe, in the level's pipe order
	Trace      engine.Trace
}

// Changes counts the pipes that were moved or rotated.
func (s Solution) Changes(original Level) int {
	n := 0
	for i, p := range s.Placements {
		if p.Moved() || p.Type != original.Pipes[i].Type {
			n++
		}
	}
	return n
}

type pipeStatus uint8

const (
	atOrigin  pipeStatus = iota // untouched and not yet reached by the ball
	committed                   // the ball rolls through it where it stands
	removed                     // moved off a cell the ball passes
)

// solver searches ball paths, deciding pipe placement lazily: whenever the
// ball is about to enter a cell it has not visited, it may drop a pipe there
// (any bend that accepts it) or, on a pipe's starting cell, keep, turn or
// clear that pipe. Pipes are interchangeable once rotation is allowed, so a
// dropped pipe is only tied to a source pipe when the solution is built.
type solver struct {
	level    Level
	board    *engine.Board
	origin   map[engine.Coord]int
	status   []pipeStatus
	final    []PipeSpot
	dropped  []PipeSpot
	used     int
	visited  map[engine.Coord]int
	maxSteps int
	budget   int
	nodes    int
	spent    bool
}

// Solve searches for an arrangement of l's pipes, each moved to any free cell
// and turned to any bend, that sends the cannon's ball into the goal within
// maxSteps transitions. A level that already wins comes back unchanged.
func Solve(l Level, maxSteps int) (Solution, error) {
	return SolveWithBudget(l, maxSteps, DefaultSolveBudget)
}

// SolveWithBudget is Solve with an explicit search budget.
func SolveWithBudget(l Level, maxSteps, budget int) (Solution, error) {
	if err := ValidateStructure(l); err != nil {
		return Solution{}, err
	}

	s := &solver{
		level:    l,
		board:    l.Board(),
		origin:   make(map[engine.Coord]int, len(l.Pipes)),
		status:   make([]pipeStatus, len(l.Pipes)),
		final:    make([]PipeSpot, len(l.Pipes)),
		visited:  map[engine.Coord]int{l.Cannon.Pos: 1},
		maxSteps: stepCap(maxSteps),
		budget:   budget,
	}
	for i, p := range l.Pipes {
		s.origin[p.Cell] = i
	}

	ball := engine.Ball{Pos: l.Cannon.Pos, Dir: l.Cannon.Dir}
	if !s.search(ball, 0) {
		if s.spent {
			return Solution{}, ErrSolveBudget
		}
		return Solution{}, ErrUnsolvable
	}
	return s.solution(maxSteps)
}

func stepCap(maxSteps int) int {
	if maxSteps <= 0 {
		return defaultSolveSteps
	}
	return maxSteps
}

func (s *solver) search(b engine.Ball, steps int) bool {
	s.nodes++
	if s.nodes > s.budget {
		s.spent = true
		return false
	}
	if steps >= s.maxSteps {
		return false
	}

	next := b.Pos.Step(b.Dir)
	if s.visited[next] == 0 {
		switch s.board.At(next).Kind {
		case engine.KindPipe:
			if i, ok := s.origin[next]; ok && s.status[i] == atOrigin {
				return s.decideOrigin(b, steps, i)
			}
		case engine.KindEmpty:
			return s.decideEmpty(b, steps)
		}
	}
	return s.advance(b, steps)
}

func (s *solver) decideEmpty(b engine.Ball, steps int) bool {
	if s.advance(b, steps) {
		return true
	}
	if s.spent || s.used >= len(s.status) {
		return false
	}

	next := b.Pos.Step(b.Dir)
	for _, t := range accepting(b.Dir) {
		s.board.Set(next, engine.Pipe(t))
		s.dropped = append(s.dropped, PipeSpot{Cell: next, Type: t})
		s.used++

		if s.advance(b, steps) {
			return true
		}

		s.used--
		s.dropped = s.dropped[:len(s.dropped)-1]
		s.board.Set(next, engine.Empty())
		if s.spent {
			return false
		}
	}
	return false
}

func (s *solver) decideOrigin(b engine.Ball, steps int, i int) bool {
	next := b.Pos.Step(b.Dir)
	orig := s.level.Pipes[i].Type

	if s.used < len(s.status) {
		for _, t := range accepting(b.Dir, orig) {
			s.board.Set(next, engine.Pipe(t))
			s.status[i] = committed
			s.final[i] = PipeSpot{Cell: next, Type: t}
			s.used++

			if s.advance(b, steps) {
				return true
			}

			s.used--
			s.status[i] = atOrigin
			s.board.Set(next, engine.Pipe(orig))
			if s.spent {
				return false
			}
		}
	}

	// Clear the cell and let the ball roll on.
	s.board.Set(next, engine.Empty())
	s.status[i] = removed
	if s.advance(b, steps) {
		return true
	}
	s.status[i] = atOrigin
	s.board.Set(next, engine.Pipe(orig))
	return false
}

func (s *solver) advance(b engine.Ball, steps int) bool {
	mv := engine.Next(s.board, b)
	switch mv.State {
	case engine.StateWon:
		return true
	case engine.StateLost:
		return false
	}

	s.visited[mv.Ball.Pos]++
	if s.search(mv.Ball, steps+1) {
		return true
	}
	s.visited[mv.Ball.Pos]--
	return false
}

// accepting lists the bends that take a ball travelling in d. A preferred
// bend comes first when it is one of them.
func accepting(d engine.Dir, prefer ...engine.PipeType) []engine.PipeType {
	order := append(append([]engine.PipeType(nil), prefer...), engine.AllPipeTypes()...)
	out := make([]engine.PipeType, 0, 2)
	for _, t := range order {
		if _, ok := engine.Redirect(t, d); !ok || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *solver) solution(maxSteps int) (Solution, error) {
	// Pipes not rolled through in place feed the dropped ones: cleared pipes
	// first, then ones the ball never reached.
	var sources []int
	for _, want := range []pipeStatus{removed, atOrigin} {
		for i, st := range s.status {
			if st == want {
				sources = append(sources, i)
			}
		}
	}
	if len(sources) < len(s.dropped) {
		return Solution{}, fmt.Errorf("level: solver dropped %d pipes with %d to spare", len(s.dropped), len(sources))
	}

	occupied := make(map[engine.Coord]bool)
	for i, st := range s.status {
		if st == committed {
			occupied[s.final[i].Cell] = true
		}
	}
	for k, spot := range s.dropped {
		s.final[sources[k]] = spot
		occupied[spot.Cell] = true
	}
	for _, i := range sources[len(s.dropped):] {
		p := s.level.Pipes[i]
		if s.status[i] == atOrigin {
			s.final[i] = p
			occupied[p.Cell] = true
			continue
		}
		park, ok := s.parking(occupied)
		if !ok {
			return Solution{}, fmt.Errorf("level: no free cell to park pipe from %s", p.Cell)
		}
		s.final[i] = PipeSpot{Cell: park, Type: p.Type}
		occupied[park] = true
	}

	solved := s.level.Clone()
	solved.Pipes = append([]PipeSpot(nil), s.final...)

	placements := make([]Placement, len(s.final))
	for i, p := range s.final {
		placements[i] = Placement{From: s.level.Pipes[i].Cell, To: p.Cell, Type: p.Type}
	}

	opts := engine.DefaultOptions()
	opts.MaxSteps = stepCap(maxSteps)
	tr := engine.Run(solved.Board(), engine.Ball{Pos: solved.Cannon.Pos, Dir: solved.Cannon.Dir}, opts)
	if !tr.Won() {
		return Solution{}, fmt.Errorf("level: arrangement for %s does not win (%s)", s.level.ID, tr.Reason)
	}

	return Solution{Level: solved, Placements: placements, Trace: tr}, nil
}

// parking finds an empty cell off the ball's path for a pipe that was cleared
// out of the way.
func (s *solver) parking(occupied map[engine.Coord]bool) (engine.Coord, bool) {
	for row := 0; row < s.level.Height; row++ {
		for col := 0; col < s.level.Width; col++ {
			c := engine.C(col, row)
			if s.visited[c] > 0 || occupied[c] {
				continue
			}
			if s.board.At(c).Kind != engine.KindEmpty {
				continue
			}
			return c, true
		}
	}
	return engine.Coord{}, false
}
