package engine

// Board is the rectangular Field built from level data.
// Cells are stored in row-major order: index = row*W + col.
// A Board handed to running machines must not be mutated; use Clone to edit.
type Board struct {
	W     int
	H     int
	cells []Content
}

// NewBoard creates an all-empty board with the given dimensions.
func NewBoard(w, h int) *Board {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Board{
		W:     w,
		H:     h,
		cells: make([]Content, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (b *Board) index(c Coord) int {
	return c.Row*b.W + c.Col
}

// InBounds reports whether c lies in the closed 0..W-1 × 0..H-1 rectangle.
func (b *Board) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < b.W && c.Row >= 0 && c.Row < b.H
}

// At returns the content of cell c, or Outside when c is out of bounds.
func (b *Board) At(c Coord) Content {
	if !b.InBounds(c) {
		return Outside()
	}
	return b.cells[b.index(c)]
}

// Set stores content at c. Out-of-bounds coordinates are ignored.
func (b *Board) Set(c Coord, content Content) {
	if b.InBounds(c) {
		b.cells[b.index(c)] = content
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Content, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		W:     b.W,
		H:     b.H,
		cells: cells,
	}
}

// Find returns all coordinates holding the given kind, ordered by row then column.
func (b *Board) Find(k Kind) []Coord {
	coords := make([]Coord, 0)
	for row := 0; row < b.H; row++ {
		for col := 0; col < b.W; col++ {
			c := C(col, row)
			if b.At(c).Kind == k {
				coords = append(coords, c)
			}
		}
	}
	return coords
}

// Equal returns true if two boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b.W != other.W || b.H != other.H {
		return false
	}
	for i, c := range b.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}
