package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range engine.AllDirs() {
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("%v.Opposite().Opposite() = %v, expected %v", d, got, d)
		}
		if d.Opposite() == d {
			t.Errorf("%v.Opposite() must differ from %v", d, d)
		}
	}
}

func TestVelocity(t *testing.T) {
	tests := []struct {
		dir    engine.Dir
		dx, dy int
	}{
		{engine.DirRight, 1, 0},
		{engine.DirUp, 0, -1},
		{engine.DirLeft, -1, 0},
		{engine.DirDown, 0, 1},
	}
	for _, tt := range tests {
		dx, dy := tt.dir.Velocity()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Velocity() = (%d,%d), expected (%d,%d)", tt.dir, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestVelocityPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { engine.Dir(9).Velocity() })
	assert.Panics(t, func() { engine.Dir(9).Opposite() })
}

func TestRedirectTable(t *testing.T) {
	tests := []struct {
		pipe engine.PipeType
		in   engine.Dir
		out  engine.Dir
		ok   bool
	}{
		{engine.PipeLeftDown, engine.DirRight, engine.DirDown, true},
		{engine.PipeLeftDown, engine.DirUp, engine.DirLeft, true},
		{engine.PipeLeftDown, engine.DirLeft, engine.DirLeft, false},
		{engine.PipeLeftDown, engine.DirDown, engine.DirDown, false},

		{engine.PipeRightDown, engine.DirLeft, engine.DirDown, true},
		{engine.PipeRightDown, engine.DirUp, engine.DirRight, true},
		{engine.PipeRightDown, engine.DirRight, engine.DirRight, false},
		{engine.PipeRightDown, engine.DirDown, engine.DirDown, false},

		{engine.PipeLeftUp, engine.DirRight, engine.DirUp, true},
		{engine.PipeLeftUp, engine.DirDown, engine.DirLeft, true},
		{engine.PipeLeftUp, engine.DirLeft, engine.DirLeft, false},
		{engine.PipeLeftUp, engine.DirUp, engine.DirUp, false},

		{engine.PipeRightUp, engine.DirLeft, engine.DirUp, true},
		{engine.PipeRightUp, engine.DirDown, engine.DirRight, true},
		{engine.PipeRightUp, engine.DirRight, engine.DirRight, false},
		{engine.PipeRightUp, engine.DirUp, engine.DirUp, false},
	}

	for _, tt := range tests {
		out, ok := engine.Redirect(tt.pipe, tt.in)
		if ok != tt.ok {
			t.Errorf("Redirect(%v, %v) ok = %v, expected %v", tt.pipe, tt.in, ok, tt.ok)
			continue
		}
		if ok && out != tt.out {
			t.Errorf("Redirect(%v, %v) = %v, expected %v", tt.pipe, tt.in, out, tt.out)
		}
	}
}

func TestRedirectRoundTrip(t *testing.T) {
	// Whatever goes in one end comes back out the other.
	for _, p := range engine.AllPipeTypes() {
		for _, in := range engine.Entries(p) {
			out, ok := engine.Redirect(p, in)
			require.True(t, ok)

			back, ok := engine.Redirect(p, out.Opposite())
			require.True(t, ok, "%v: reverse entry %v rejected", p, out.Opposite())
			assert.Equal(t, in.Opposite(), back, "%v entered %v", p, in)
		}
	}
}

func TestEntriesAndDeadEntriesPartitionDirs(t *testing.T) {
	for _, p := range engine.AllPipeTypes() {
		seen := map[engine.Dir]int{}
		for _, d := range engine.Entries(p) {
			seen[d]++
		}
		for _, d := range engine.DeadEntries(p) {
			seen[d]++
		}
		assert.Len(t, seen, 4, "pipe %v", p)
		for d, n := range seen {
			assert.Equal(t, 1, n, "pipe %v dir %v", p, d)
		}
	}
}

func TestRotateCycle(t *testing.T) {
	p := engine.PipeRightDown
	want := []engine.PipeType{engine.PipeLeftDown, engine.PipeLeftUp, engine.PipeRightUp, engine.PipeRightDown}
	for i, w := range want {
		p = p.Rotate()
		if p != w {
			t.Errorf("rotation %d = %v, expected %v", i+1, p, w)
		}
	}
}

func TestParsePipeType(t *testing.T) {
	tests := []struct {
		in   string
		want engine.PipeType
		ok   bool
	}{
		{"LeftDown", engine.PipeLeftDown, true},
		{"right_up", engine.PipeRightUp, true},
		{"lu", engine.PipeLeftUp, true},
		{"╭", engine.PipeRightDown, true},
		{"straight", 0, false},
	}
	for _, tt := range tests {
		got, ok := engine.ParsePipeType(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParsePipeType(%q) = %v,%v, expected %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDir(t *testing.T) {
	for _, d := range engine.AllDirs() {
		got, ok := engine.ParseDir(d.String())
		assert.True(t, ok, d.String())
		assert.Equal(t, d, got)

		got, ok = engine.ParseDir(string(d.Arrow()))
		assert.True(t, ok, string(d.Arrow()))
		assert.Equal(t, d, got)
	}
	_, ok := engine.ParseDir("sideways")
	assert.False(t, ok)
}
