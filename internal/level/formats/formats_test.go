package formats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

const firstBend = ` LEVEL 0
··········
······○···
·····▲*···
······*···
·→*****···
·······╯··
··~·······
··········
`

func TestParseGlyphs(t *testing.T) {
	l, err := ParseGlyphs([]byte(firstBend))
	require.NoError(t, err)

	assert.Equal(t, "LEVEL 0", l.Name)
	assert.Equal(t, 10, l.Width)
	assert.Equal(t, 8, l.Height)
	assert.Equal(t, engine.Launcher{Pos: engine.C(1, 4), Dir: engine.DirRight}, l.Cannon)
	assert.Equal(t, engine.C(6, 1), l.Goal)
	assert.Equal(t, []PipeSpot{{Cell: engine.C(7, 5), Type: engine.PipeLeftUp}}, l.Pipes)
	assert.Equal(t, []engine.Coord{engine.C(5, 2)}, l.Walls)
	assert.Equal(t, []engine.Coord{engine.C(2, 6)}, l.Pits)
	assert.Len(t, l.Roads, 7)
}

func TestParseGlyphsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"ragged", "t\n→··○\n···\n", "width"},
		{"no cannon", "t\n··○\n", "cannons"},
		{"two goals", "t\n→○○\n", "goals"},
		{"unknown glyph", "t\n→#○\n", "unknown glyph"},
		{"empty", "title only\n", "no rows"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGlyphs([]byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestGlyphRoundTrip(t *testing.T) {
	l, err := ParseGlyphs([]byte(firstBend))
	require.NoError(t, err)

	again, err := ParseGlyphs(MarshalGlyphs(l))
	require.NoError(t, err)
	assert.Equal(t, l, again)
}

func TestParseYAML(t *testing.T) {
	data := `
id: corner
name: Corner
size: {w: 6, h: 4}
cannon: {x: 0, y: 3, dir: right}
goal: {x: 5, y: 0}
pipes:
  - {x: 5, y: 3, type: LeftUp}
  - {x: 2, y: 1, type: "╭"}
walls:
  - {x: 3, y: 0}
metadata:
  author: test
`
	l, err := ParseYAML([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "corner", l.ID)
	assert.Equal(t, 6, l.Width)
	assert.Equal(t, engine.DirRight, l.Cannon.Dir)
	assert.Equal(t, engine.PipeRightDown, l.Pipes[1].Type)
	assert.Equal(t, "test", l.Metadata["author"])
}

func TestParseYAMLErrors(t *testing.T) {
	_, err := ParseYAML([]byte("cannon: {dir: sideways}"))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("cannon: {dir: up}\npipes:\n  - {type: straight}\n"))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("size: [1"))
	assert.Error(t, err)
}

func TestYAMLMatchesGlyphs(t *testing.T) {
	l, err := ParseGlyphs([]byte(firstBend))
	require.NoError(t, err)
	l.ID = "first-bend"

	data, err := MarshalYAML(l)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "LeftUp"))

	back, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, l, back)
}

func TestParseByExtension(t *testing.T) {
	_, err := Parse([]byte(firstBend), ".MAP")
	assert.NoError(t, err)

	_, err = Parse(nil, ".json")
	assert.Error(t, err)
}
