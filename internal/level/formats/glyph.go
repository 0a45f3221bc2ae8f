package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

// Glyphs used in map files.
const (
	GlyphEmpty = '·'
	GlyphGoal  = '○'
	GlyphWall  = '▲'
	GlyphPit   = '~'
	GlyphRoad  = '*'
)

// ParseGlyphs parses a glyph map: a title line followed by rows of glyphs,
// one rune per cell. Blank lines are ignored and every row must have the
// same width.
//
//	First Bend
//	······○···
//	·····▲····
//	·→·····╯··
func ParseGlyphs(data []byte) (Level, error) {
	var (
		title string
		rows  []string
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			title = strings.TrimSpace(line)
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.TrimRight(line, " \t"))
	}
	if err := sc.Err(); err != nil {
		return Level{}, fmt.Errorf("reading map: %w", err)
	}
	if len(rows) == 0 {
		return Level{}, fmt.Errorf("map has no rows")
	}

	width := utf8.RuneCountInString(rows[0])
	level := Level{
		Name:   title,
		Width:  width,
		Height: len(rows),
	}

	var cannons, goals int
	for row, line := range rows {
		if n := utf8.RuneCountInString(line); n != width {
			return Level{}, fmt.Errorf("row %d: width %d, expected %d", row, n, width)
		}

		col := 0
		for _, r := range line {
			c := engine.C(col, row)
			col++

			switch r {
			case GlyphEmpty:
			case GlyphGoal:
				level.Goal = c
				goals++
			case GlyphWall:
				level.Walls = append(level.Walls, c)
			case GlyphPit:
				level.Pits = append(level.Pits, c)
			case GlyphRoad:
				level.Roads = append(level.Roads, c)
			default:
				if d, ok := arrowGlyph(r); ok {
					level.Cannon = engine.Launcher{Pos: c, Dir: d}
					cannons++
					continue
				}
				if t, ok := pipeGlyph(r); ok {
					level.Pipes = append(level.Pipes, PipeSpot{Cell: c, Type: t})
					continue
				}
				return Level{}, fmt.Errorf("row %d col %d: unknown glyph %q", row, c.Col, r)
			}
		}
	}

	if cannons != 1 {
		return Level{}, fmt.Errorf("map has %d cannons, expected 1", cannons)
	}
	if goals != 1 {
		return Level{}, fmt.Errorf("map has %d goals, expected 1", goals)
	}

	return level, nil
}

func arrowGlyph(r rune) (engine.Dir, bool) {
	for _, d := range engine.AllDirs() {
		if d.Arrow() == r {
			return d, true
		}
	}
	return 0, false
}

func pipeGlyph(r rune) (engine.PipeType, bool) {
	for _, t := range engine.AllPipeTypes() {
		if t.Glyph() == r {
			return t, true
		}
	}
	return 0, false
}

// MarshalGlyphs encodes a level as a glyph map. Cells holding nothing the
// engine cares about are written as roads when listed in l.Roads.
func MarshalGlyphs(l Level) []byte {
	grid := make([][]rune, l.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(GlyphEmpty), l.Width))
	}
	set := func(c engine.Coord, r rune) {
		if c.Row >= 0 && c.Row < l.Height && c.Col >= 0 && c.Col < l.Width {
			grid[c.Row][c.Col] = r
		}
	}

	for _, c := range l.Roads {
		set(c, GlyphRoad)
	}
	for _, c := range l.Pits {
		set(c, GlyphPit)
	}
	for _, c := range l.Walls {
		set(c, GlyphWall)
	}
	for _, p := range l.Pipes {
		set(p.Cell, p.Type.Glyph())
	}
	set(l.Goal, GlyphGoal)
	set(l.Cannon.Pos, l.Cannon.Dir.Arrow())

	var buf bytes.Buffer
	buf.WriteString(l.Name)
	buf.WriteByte('\n')
	for _, row := range grid {
		buf.WriteString(string(row))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
