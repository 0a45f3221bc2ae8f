package game

import (
	"time"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

// shot is a ball in flight together with the segment it is playing.
type shot struct {
	flight  *engine.Flight
	seg     engine.Segment
	elapsed time.Duration
	playing bool
}

// advance plays dt of animation. Segments that finish are acknowledged so the
// flight can produce the next one; a single call may cross several short
// segments. It returns false once the flight has no more segments.
//
// Receiving blocks only until the flight's goroutine computes its next
// transition, which never waits on anything but the ack just sent.
func (s *shot) advance(dt time.Duration) bool {
	s.elapsed += dt
	for {
		if !s.playing {
			seg, ok := <-s.flight.Segments()
			if !ok {
				return false
			}
			s.seg = seg
			s.playing = true
		}
		if s.elapsed < s.seg.Duration {
			return true
		}
		s.elapsed -= s.seg.Duration
		s.playing = false
		s.flight.Ack()
	}
}

// position returns where the ball is drawn and at what scale.
// ok is false before the first segment arrives.
func (s *shot) position() (p engine.Point, scale float64, ok bool) {
	if !s.playing {
		return engine.Point{}, 1, false
	}
	p, scale = s.seg.At(s.seg.Progress(s.elapsed))
	return p, scale, true
}
