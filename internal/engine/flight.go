package engine

import (
	"context"
	"sync"
)

// Flight runs one ball's Machine on its own goroutine and streams the motion
// segments of every transition. The consumer receives a segment from Segments,
// plays it, then calls Ack; the next segment is only produced after the ack.
//
// Several flights may be in the air at once. Each owns its machine, and the
// field they share must not change while any of them is running.
type Flight struct {
	id       string
	ball     Ball
	segments chan Segment
	acks     chan struct{}
	done     chan struct{}
	cancel   context.CancelFunc

	mu     sync.Mutex
	state  State
	reason LossReason
	steps  int
	path   []Coord
}

// CompleteFunc is called once a flight finishes, with won reporting the
// outcome. It is not called when the flight is cancelled while a segment is
// pending. A cancel that arrives after the final segment was acknowledged
// can race with the call, so callers that cancel must discard late results.
type CompleteFunc func(b Ball, won bool)

// Launch starts a flight for ball b on field f. Cancelling ctx, or calling
// Cancel, stops the flight at its next suspension point.
func Launch(ctx context.Context, f Field, b Ball, opts Options, onComplete CompleteFunc) *Flight {
	ctx, cancel := context.WithCancel(ctx)
	fl := &Flight{
		id:       b.ID,
		ball:     b,
		segments: make(chan Segment),
		acks:     make(chan struct{}),
		done:     make(chan struct{}),
		cancel:   cancel,
		state:    StateTraveling,
		path:     []Coord{b.Pos},
	}
	go fl.run(ctx, NewMachine(f, b, opts), onComplete)
	return fl
}

func (fl *Flight) run(ctx context.Context, m *Machine, onComplete CompleteFunc) {
	defer close(fl.done)
	defer close(fl.segments)
	defer fl.cancel()

	for !m.Done() {
		tr := m.Step()
		fl.record(tr)

		for _, seg := range tr.Segments {
			select {
			case fl.segments <- seg:
			case <-ctx.Done():
				return
			}
			select {
			case <-fl.acks:
			case <-ctx.Done():
				return
			}
		}
	}

	if ctx.Err() != nil {
		return
	}
	if onComplete != nil {
		onComplete(m.Ball(), m.State() == StateWon)
	}
}

func (fl *Flight) record(tr Transition) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	fl.ball = tr.Ball
	fl.state = tr.State
	fl.reason = tr.Reason
	fl.steps = tr.Step
	if tr.Event != EventLost && tr.Ball.Pos != fl.path[len(fl.path)-1] {
		fl.path = append(fl.path, tr.Ball.Pos)
	}
}

// ID returns the identifier of the ball in flight.
func (fl *Flight) ID() string {
	return fl.id
}

// Ball returns the ball as of its latest transition.
func (fl *Flight) Ball() Ball {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.ball
}

// State returns the state as of the latest transition.
func (fl *Flight) State() State {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.state
}

// Reason returns why the ball was lost, or LossNone.
func (fl *Flight) Reason() LossReason {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.reason
}

// Steps returns the number of transitions taken so far.
func (fl *Flight) Steps() int {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.steps
}

// Path returns a copy of the cells the ball has occupied, cannon first.
func (fl *Flight) Path() []Coord {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	out := make([]Coord, len(fl.path))
	copy(out, fl.path)
	return out
}

// Segments is closed once the flight ends or is cancelled.
func (fl *Flight) Segments() <-chan Segment {
	return fl.segments
}

// Ack tells the flight the last received segment finished playing.
// It returns immediately if the flight has already ended.
func (fl *Flight) Ack() {
	select {
	case fl.acks <- struct{}{}:
	case <-fl.done:
	}
}

// Cancel stops the flight at its next suspension point. See CompleteFunc for
// a cancel that lands after the last segment.
func (fl *Flight) Cancel() {
	fl.cancel()
}

// Done is closed when the flight's goroutine has exited.
func (fl *Flight) Done() <-chan struct{} {
	return fl.done
}

// Wait blocks until the flight's goroutine has exited.
func (fl *Flight) Wait() {
	<-fl.done
}
