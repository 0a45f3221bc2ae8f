package level

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pipeshot/internal/engine"
	"github.com/vovakirdan/pipeshot/internal/level/formats"
)

// PathGlyph marks empty cells the ball rolled through.
const PathGlyph = '•'

// RenderASCII creates a text representation of the level using the map
// glyphs. Cells listed in path that hold nothing else are marked with
// PathGlyph. Used by the trace command and golden tests.
func RenderASCII(l Level, path []engine.Coord) string {
	b := l.Board()
	onPath := make(map[engine.Coord]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s) %dx%d\n", l.Title(), l.ID, l.Width, l.Height))
	for row := 0; row < l.Height; row++ {
		for col := 0; col < l.Width; col++ {
			sb.WriteRune(glyphAt(l, b, engine.C(col, row), onPath))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyphAt(l Level, b *engine.Board, c engine.Coord, onPath map[engine.Coord]bool) rune {
	content := b.At(c)
	switch content.Kind {
	case engine.KindCannon:
		return l.Cannon.Dir.Arrow()
	case engine.KindGoal:
		return formats.GlyphGoal
	case engine.KindWall:
		return formats.GlyphWall
	case engine.KindPit:
		return formats.GlyphPit
	case engine.KindPipe:
		return content.Pipe.Glyph()
	}
	if onPath[c] {
		return PathGlyph
	}
	if l.IsRoad(c) {
		return formats.GlyphRoad
	}
	return formats.GlyphEmpty
}
