package engine

import (
	"math"
	"time"
)

// SegmentKind identifies how a motion segment interpolates.
type SegmentKind uint8

const (
	SegmentLinear SegmentKind = iota // straight line From → To
	SegmentArc                       // along a circle around Center
	SegmentPulse                     // scale up and back down in place
)

// String returns the string representation of a segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLinear:
		return "linear"
	case SegmentArc:
		return "arc"
	case SegmentPulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// Segment is one animatable piece of a ball's movement. The presentation layer
// plays segments in order; it never has to re-derive game logic.
type Segment struct {
	Kind     SegmentKind
	Cell     Coord // cell the segment is drawn in
	Duration time.Duration

	// Linear: From → To. Pulse: From is the position, Scale the peak.
	From  Point
	To    Point
	Scale float64

	// Arc: the ball moves from StartAngle to EndAngle around Center.
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// LinearSegment creates a straight movement segment.
func LinearSegment(cell Coord, from, to Point, d time.Duration) Segment {
	return Segment{Kind: SegmentLinear, Cell: cell, From: from, To: to, Scale: 1, Duration: d}
}

// ArcSegment creates a segment along a circle. Its duration is proportional to
// the arc length, with speed the time needed to cover one cell.
func ArcSegment(cell Coord, center Point, radius, start, end, cellSize float64, speed time.Duration) Segment {
	length := math.Abs(end-start) * radius
	d := time.Duration(math.Round(float64(speed) * length / cellSize))
	return Segment{
		Kind:       SegmentArc,
		Cell:       cell,
		Center:     center,
		Radius:     radius,
		StartAngle: start,
		EndAngle:   end,
		Scale:      1,
		Duration:   d,
		From:       arcPoint(center, radius, start),
		To:         arcPoint(center, radius, end),
	}
}

// PulseSegment creates the celebratory scale pulse played on the goal.
func PulseSegment(cell Coord, at Point, scale float64, d time.Duration) Segment {
	return Segment{Kind: SegmentPulse, Cell: cell, From: at, To: at, Scale: scale, Duration: d}
}

// At samples the segment at progress t in [0,1] and returns the ball position
// and its display scale.
func (s Segment) At(t float64) (Point, float64) {
	t = math.Max(0, math.Min(1, t))

	switch s.Kind {
	case SegmentArc:
		angle := s.StartAngle*(1-t) + s.EndAngle*t
		return arcPoint(s.Center, s.Radius, angle), 1
	case SegmentPulse:
		// yoyo: up for the first half, back down for the second
		k := 2 * t
		if t > 0.5 {
			k = 2 - 2*t
		}
		return s.From, 1 + (s.Scale-1)*k
	default:
		return s.From.Lerp(s.To, t), 1
	}
}

// Progress converts elapsed time into a [0,1] progress value for this segment.
// A zero-length segment is always complete.
func (s Segment) Progress(elapsed time.Duration) float64 {
	if s.Duration <= 0 {
		return 1
	}
	return math.Min(1, float64(elapsed)/float64(s.Duration))
}

func arcPoint(center Point, radius, angle float64) Point {
	return center.Add(math.Cos(angle)*radius, math.Sin(angle)*radius)
}
