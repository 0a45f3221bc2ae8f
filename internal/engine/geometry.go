package engine

import (
	"fmt"
	"math"
)

// DefaultCellSize is the pixel size of one grid cell in the reference layout.
const DefaultCellSize = 80

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Lerp interpolates linearly between p and q; t=0 is p, t=1 is q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y)
}

// Arc describes the quarter circle a pipe draws inside its cell.
// CX and CY are offsets of the circle center from the cell center;
// Start and End are angles in radians, screen orientation (y grows down).
type Arc struct {
	CX    float64
	CY    float64
	Start float64
	End   float64
}

// Span returns End - Start. Its absolute value is always π/2.
func (a Arc) Span() float64 {
	return a.End - a.Start
}

// Mid returns the angle halfway along the arc (the cell's center line).
func (a Arc) Mid() float64 {
	return (a.Start + a.End) / 2
}

// Geometry maps grid cells to pixel space.
type Geometry struct {
	CellSize float64
}

// NewGeometry creates a geometry for square cells of the given pixel size.
func NewGeometry(cellSize float64) Geometry {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return Geometry{CellSize: cellSize}
}

// Half returns half a cell, which is also the radius of every pipe arc.
func (g Geometry) Half() float64 {
	return g.CellSize / 2
}

// PixelCenter returns the pixel position of the center of cell c.
func (g Geometry) PixelCenter(c Coord) Point {
	return Point{
		X: (float64(c.Col) + 0.5) * g.CellSize,
		Y: (float64(c.Row) + 0.5) * g.CellSize,
	}
}

// Border returns the midpoint of the edge of cell c facing direction d.
func (g Geometry) Border(c Coord, d Dir) Point {
	dx, dy := d.Velocity()
	return g.PixelCenter(c).Add(float64(dx)*g.Half(), float64(dy)*g.Half())
}

// PipeArc returns the drawing parameters of pipe p in natural angle order.
func (g Geometry) PipeArc(p PipeType) Arc {
	half := g.Half()

	cx := half
	if p == PipeLeftDown || p == PipeLeftUp {
		cx = -half
	}
	cy := half
	if p == PipeLeftUp || p == PipeRightUp {
		cy = -half
	}

	var base float64
	switch p {
	case PipeLeftDown:
		base = -math.Pi / 2
	case PipeRightDown:
		base = math.Pi
	case PipeLeftUp:
		base = 0
	case PipeRightUp:
		base = math.Pi / 2
	default:
		panic(fmt.Sprintf("engine: unknown pipe type %d", p))
	}

	return Arc{CX: cx, CY: cy, Start: base, End: base + math.Pi/2}
}

// PipeArcFrom returns the drawing parameters of pipe p ordered so that Start is
// the border a ball travelling in direction entry comes in through and End is
// the border it leaves through. A rejected entry keeps the natural order.
func (g Geometry) PipeArcFrom(p PipeType, entry Dir) Arc {
	arc := g.PipeArc(p)
	exit, ok := Redirect(p, entry)
	if !ok {
		return arc
	}
	// A +1 step in Dir order does not match increasing screen angles.
	if (4+int(exit)-int(entry))%4 == 1 {
		arc.Start, arc.End = arc.End, arc.Start
	}
	return arc
}

// ArcPoint returns the pixel position at angle on the arc of pipe cell c.
func (g Geometry) ArcPoint(c Coord, a Arc, angle float64) Point {
	return arcPoint(g.PixelCenter(c).Add(a.CX, a.CY), g.Half(), angle)
}
