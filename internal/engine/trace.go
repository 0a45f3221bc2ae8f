package engine

import "time"

// Trace is the complete, synchronous record of one ball's run.
type Trace struct {
	Path        []Coord // cells occupied, cannon first
	Transitions []Transition
	State       State
	Reason      LossReason
	Steps       int
}

// Won reports whether the ball reached the goal.
func (t Trace) Won() bool {
	return t.State == StateWon
}

// Duration sums the durations of every segment in the trace.
func (t Trace) Duration() time.Duration {
	var total time.Duration
	for _, tr := range t.Transitions {
		for _, s := range tr.Segments {
			total += s.Duration
		}
	}
	return total
}

// Run drives ball b on field f to a terminal state without any timing.
func Run(f Field, b Ball, opts Options) Trace {
	m := NewMachine(f, b, opts)

	t := Trace{Path: []Coord{b.Pos}}
	for !m.Done() {
		tr := m.Step()
		t.Transitions = append(t.Transitions, tr)
		if tr.Event != EventLost && tr.Ball.Pos != t.Path[len(t.Path)-1] {
			t.Path = append(t.Path, tr.Ball.Pos)
		}
	}

	t.State = m.State()
	t.Reason = m.Reason()
	t.Steps = m.Steps()
	return t
}
