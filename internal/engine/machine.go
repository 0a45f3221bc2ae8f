package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the phase of a ball's flight.
type State uint8

const (
	StateTraveling State = iota
	StateWon
	StateLost
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateTraveling:
		return "traveling"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// LossReason explains why a ball was lost.
type LossReason uint8

const (
	LossNone LossReason = iota
	LossExitedField
	LossHitCannon
	LossFellInPit
	LossDeadPipe
	LossStepLimit
)

// String returns the string representation of a loss reason.
func (r LossReason) String() string {
	switch r {
	case LossNone:
		return "none"
	case LossExitedField:
		return "exited field"
	case LossHitCannon:
		return "hit cannon"
	case LossFellInPit:
		return "fell into pit"
	case LossDeadPipe:
		return "dead pipe side"
	case LossStepLimit:
		return "step limit"
	default:
		return "unknown"
	}
}

// Event classifies a single transition.
type Event uint8

const (
	EventMove   Event = iota // advanced into an empty cell
	EventPipe                // entered a pipe and turned
	EventBounce              // bounced off a wall
	EventGoal                // reached the goal
	EventLost                // left play
)

// String returns the string representation of an event.
func (e Event) String() string {
	switch e {
	case EventMove:
		return "move"
	case EventPipe:
		return "pipe"
	case EventBounce:
		return "bounce"
	case EventGoal:
		return "goal"
	case EventLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Ball is the transient entity fired from a cannon.
type Ball struct {
	ID  string
	Pos Coord
	Dir Dir
}

// Launcher is the cannon: the cell balls start in and the way they face.
type Launcher struct {
	Pos Coord
	Dir Dir
}

// Fire creates a new ball with a fresh identifier at the cannon.
func (l Launcher) Fire() Ball {
	return Ball{ID: uuid.NewString(), Pos: l.Pos, Dir: l.Dir}
}

// Move is the result of one pure transition.
type Move struct {
	From    Ball    // ball before the step
	Ball    Ball    // ball after the step
	Target  Coord   // the cell that was inspected
	Content Content // what the target cell holds
	Event   Event
	State   State
	Reason  LossReason
}

// Next computes the transition of ball b on field f. It does not mutate
// anything and queries at most two cells: the next one and, on a wall, the
// current one.
//
// When the current cell holds a pipe, b.Dir is already the pipe's exit
// direction, so the next cell is the one past the pipe.
func Next(f Field, b Ball) Move {
	target := b.Pos.Step(b.Dir)
	content := f.At(target)

	mv := Move{
		From:    b,
		Ball:    b,
		Target:  target,
		Content: content,
		State:   StateTraveling,
	}

	switch content.Kind {
	case KindOutside:
		return mv.lose(LossExitedField)

	case KindCannon:
		return mv.lose(LossHitCannon)

	case KindPit:
		return mv.lose(LossFellInPit)

	case KindPipe:
		out, ok := Redirect(content.Pipe, b.Dir)
		if !ok {
			return mv.lose(LossDeadPipe)
		}
		mv.Ball.Pos = target
		mv.Ball.Dir = out
		mv.Event = EventPipe

	case KindGoal:
		mv.Ball.Pos = target
		mv.Event = EventGoal
		mv.State = StateWon

	case KindWall:
		// The ball stays; a pipe under it bends the bounce back along its arc.
		here := f.At(b.Pos)
		if here.IsPipe() {
			out, ok := Redirect(here.Pipe, b.Dir.Opposite())
			if !ok {
				return mv.lose(LossDeadPipe)
			}
			mv.Ball.Dir = out
		} else {
			mv.Ball.Dir = b.Dir.Opposite()
		}
		mv.Event = EventBounce

	case KindEmpty:
		mv.Ball.Pos = target
		mv.Event = EventMove

	default:
		panic(fmt.Sprintf("engine: unknown cell kind %d at %s", content.Kind, target))
	}

	return mv
}

func (mv Move) lose(reason LossReason) Move {
	mv.Event = EventLost
	mv.State = StateLost
	mv.Reason = reason
	return mv
}

// Options tune a Machine.
type Options struct {
	Geometry   Geometry
	Speed      time.Duration // time for the ball to cross one cell
	MaxSteps   int           // 0 disables the step budget
	PulseScale float64       // peak scale of the win pulse
}

// DefaultOptions returns the reference timing: 80px cells, 300ms per cell,
// a budget of 100 steps and a 1.5× win pulse.
func DefaultOptions() Options {
	return Options{
		Geometry:   NewGeometry(DefaultCellSize),
		Speed:      300 * time.Millisecond,
		MaxSteps:   100,
		PulseScale: 1.5,
	}
}

// Transition is one step of a Machine, with the segments that animate it.
type Transition struct {
	Move
	Step     int
	Segments []Segment
}

// Machine drives one ball from the cannon to a terminal outcome.
// It is not safe for concurrent use; each ball owns its machine.
type Machine struct {
	field  Field
	ball   Ball
	opts   Options
	steps  int
	state  State
	reason LossReason
}

// NewMachine creates a machine for ball b on field f.
func NewMachine(f Field, b Ball, opts Options) *Machine {
	if opts.Geometry.CellSize <= 0 {
		opts.Geometry = NewGeometry(DefaultCellSize)
	}
	if opts.PulseScale <= 0 {
		opts.PulseScale = 1.5
	}
	return &Machine{
		field: f,
		ball:  b,
		opts:  opts,
		state: StateTraveling,
	}
}

// Ball returns the current ball.
func (m *Machine) Ball() Ball { return m.ball }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Reason returns why the ball was lost, or LossNone.
func (m *Machine) Reason() LossReason { return m.reason }

// Steps returns how many transitions have been taken.
func (m *Machine) Steps() int { return m.steps }

// Done reports whether the machine reached Won or Lost.
func (m *Machine) Done() bool { return m.state.Terminal() }

// Step advances the ball by one transition. Stepping a finished machine
// returns its terminal state again with no segments.
func (m *Machine) Step() Transition {
	if m.Done() {
		return Transition{
			Move: Move{From: m.ball, Ball: m.ball, Event: EventLost, State: m.state, Reason: m.reason},
			Step: m.steps,
		}
	}

	if m.opts.MaxSteps > 0 && m.steps >= m.opts.MaxSteps {
		m.state = StateLost
		m.reason = LossStepLimit
		mv := Move{From: m.ball, Ball: m.ball, Target: m.ball.Pos, Event: EventLost, State: StateLost, Reason: LossStepLimit}
		return Transition{Move: mv, Step: m.steps}
	}

	mv := Next(m.field, m.ball)
	m.steps++

	tr := Transition{Move: mv, Step: m.steps}
	if mv.State != StateLost {
		tr.Segments = m.animate(mv)
	}

	m.ball = mv.Ball
	m.state = mv.State
	m.reason = mv.Reason
	return tr
}

// animate builds the segments for a non-lost move: the ball leaves the middle
// of its cell for the border it travels toward, then settles in its new cell.
func (m *Machine) animate(mv Move) []Segment {
	g := m.opts.Geometry
	half := g.Half()
	from := mv.From
	here := m.field.At(from.Pos)
	segs := make([]Segment, 0, 3)

	// Leave the current cell.
	if here.IsPipe() {
		arc := g.PipeArcFrom(here.Pipe, from.Dir.Opposite())
		segs = append(segs, ArcSegment(from.Pos, g.PixelCenter(from.Pos).Add(arc.CX, arc.CY), half,
			arc.Mid(), arc.Start, g.CellSize, m.opts.Speed))
	} else {
		segs = append(segs, LinearSegment(from.Pos, g.PixelCenter(from.Pos), g.Border(from.Pos, from.Dir), m.opts.Speed/2))
	}

	// Enter the next cell, or come back on a bounce.
	switch mv.Event {
	case EventPipe:
		arc := g.PipeArcFrom(mv.Content.Pipe, from.Dir)
		segs = append(segs, ArcSegment(mv.Target, g.PixelCenter(mv.Target).Add(arc.CX, arc.CY), half,
			arc.Start, arc.Mid(), g.CellSize, m.opts.Speed))

	case EventBounce:
		if here.IsPipe() {
			arc := g.PipeArcFrom(here.Pipe, from.Dir.Opposite())
			segs = append(segs, ArcSegment(from.Pos, g.PixelCenter(from.Pos).Add(arc.CX, arc.CY), half,
				arc.Start, arc.Mid(), g.CellSize, m.opts.Speed))
		} else {
			segs = append(segs, LinearSegment(from.Pos, g.Border(from.Pos, from.Dir), g.PixelCenter(from.Pos), m.opts.Speed/2))
		}

	case EventGoal:
		center := g.PixelCenter(mv.Target)
		segs = append(segs, LinearSegment(mv.Target, g.Border(from.Pos, from.Dir), center, m.opts.Speed/2))
		segs = append(segs, PulseSegment(mv.Target, center, m.opts.PulseScale, 2*m.opts.Speed))

	default:
		segs = append(segs, LinearSegment(mv.Target, g.Border(from.Pos, from.Dir), g.PixelCenter(mv.Target), m.opts.Speed/2))
	}

	return segs
}
