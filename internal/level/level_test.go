package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

func TestBuiltinCampaign(t *testing.T) {
	levels := Builtin()
	require.Len(t, levels, 8)

	assert.Equal(t, "01-first-bend", levels[0].ID)
	assert.Equal(t, "First Bend", levels[0].Name)
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1].ID, levels[i].ID)
	}
}

func TestBuiltinLevelsNeedWork(t *testing.T) {
	// As shipped, no campaign level is won without touching a pipe.
	for _, l := range Builtin() {
		tr := engine.Run(l.Board(), l.Cannon.Fire(), engine.DefaultOptions())
		assert.False(t, tr.Won(), "level %s wins untouched", l.ID)
	}
}

func TestBuiltinLevelsSolvable(t *testing.T) {
	for _, l := range Builtin() {
		t.Run(l.ID, func(t *testing.T) {
			require.NoError(t, Validate(l, 100))

			sol, err := Solve(l, 100)
			require.NoError(t, err)
			assert.True(t, sol.Trace.Won())
			assert.Len(t, sol.Placements, len(l.Pipes))
			assert.Greater(t, sol.Changes(l), 0)
		})
	}
}

func TestSolveFirstBend(t *testing.T) {
	l, ok := BuiltinByID("01-first-bend")
	require.True(t, ok)

	sol, err := Solve(l, 100)
	require.NoError(t, err)

	require.Len(t, sol.Placements, 1)
	assert.Equal(t, Placement{From: engine.C(7, 5), To: engine.C(6, 4), Type: engine.PipeLeftUp}, sol.Placements[0])
	assert.True(t, sol.Placements[0].Moved())
	assert.Equal(t, engine.C(6, 1), sol.Trace.Path[len(sol.Trace.Path)-1])

	// The original level is left alone.
	assert.Equal(t, engine.C(7, 5), l.Pipes[0].Cell)
}

func TestSolveAlreadyWinning(t *testing.T) {
	l := Level{
		ID: "straight", Width: 5, Height: 1,
		Cannon: engine.Launcher{Pos: engine.C(0, 0), Dir: engine.DirRight},
		Goal:   engine.C(4, 0),
		Pipes:  []PipeSpot{{Cell: engine.C(2, 2), Type: engine.PipeLeftUp}},
	}
	// The pipe is out of bounds on purpose: structure is checked first.
	_, err := Solve(l, 10)
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeOutOfBounds, verr.Code)

	l.Height = 3
	sol, err := Solve(l, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, sol.Changes(l))
}

func TestSolveBudget(t *testing.T) {
	l, _ := BuiltinByID("04-pit-stop")
	_, err := SolveWithBudget(l, 100, 5)
	assert.ErrorIs(t, err, ErrSolveBudget)
}

func TestValidate(t *testing.T) {
	base := Level{
		ID: "v", Width: 10, Height: 8,
		Cannon: engine.Launcher{Pos: engine.C(0, 0), Dir: engine.DirRight},
		Goal:   engine.C(0, 2),
	}

	tests := []struct {
		name   string
		modify func(*Level)
		code   string
	}{
		{"zero width", func(l *Level) { l.Width = 0 }, CodeBadSize},
		{"too tall", func(l *Level) { l.Height = MaxSize + 1 }, CodeBadSize},
		{"goal outside", func(l *Level) { l.Goal = engine.C(10, 0) }, CodeOutOfBounds},
		{"road outside", func(l *Level) { l.Roads = []engine.Coord{engine.C(0, 8)} }, CodeOutOfBounds},
		{"wall on goal", func(l *Level) { l.Walls = []engine.Coord{engine.C(0, 2)} }, CodeOverlap},
		{"pipe on cannon", func(l *Level) {
			l.Pipes = []PipeSpot{{Cell: engine.C(0, 0), Type: engine.PipeRightDown}}
		}, CodeOverlap},
		{"cannon facing out", func(l *Level) { l.Cannon.Dir = engine.DirLeft }, CodeBadCannon},
		{"no pipes to turn", func(l *Level) {}, CodeNotSolvable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := base.Clone()
			tc.modify(&l)

			err := Validate(l, 100)
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.code, verr.Code)
		})
	}

	// A ╮ at (1,0) and a ╯ at (1,2) bring the ball back to column 0.
	fixed := base.Clone()
	fixed.Pipes = []PipeSpot{
		{Cell: engine.C(5, 5), Type: engine.PipeRightUp},
		{Cell: engine.C(6, 5), Type: engine.PipeRightUp},
	}
	assert.NoError(t, Validate(fixed, 100))
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	for _, l := range Builtin()[:2] {
		require.NoError(t, Save(l, filepath.Join(dir, l.ID+".map")))
	}
	yl, _ := BuiltinByID("03-around-the-block")
	yl.ID = "yaml-block"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "more"), 0o755))
	require.NoError(t, Save(yl, filepath.Join(dir, "more", "block.yaml")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.map"), []byte("x\n→→\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes"), 0o644))

	loader := NewLoader(dir)
	ids, err := loader.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"01-first-bend", "02-switchback", "yaml-block"}, ids)

	got, err := loader.LoadByID("yaml-block")
	require.NoError(t, err)
	assert.Equal(t, yl.Pipes, got.Pipes)
	assert.Equal(t, filepath.Join(dir, "more", "block.yaml"), got.FilePath)

	_, err = loader.LoadByID("missing")
	assert.Error(t, err)

	assert.Error(t, Save(yl, filepath.Join(dir, "level.json")))
}

func TestLoaderSkipsMalformedLevels(t *testing.T) {
	dir := t.TempDir()
	l, _ := BuiltinByID("01-first-bend")
	require.NoError(t, Save(l, filepath.Join(dir, l.ID+".map")))

	bad := map[string]string{
		"huge.yaml":   "id: huge\nsize: {w: 200000, h: 200000}\ncannon: {x: 0, y: 0, dir: Right}\ngoal: {x: 1, y: 0}\n",
		"flat.yaml":   "id: flat\nsize: {w: -3, h: 0}\ncannon: {x: 0, y: 0, dir: Right}\ngoal: {x: 1, y: 0}\n",
		"astray.yaml": "id: astray\nsize: {w: 4, h: 4}\ncannon: {x: 0, y: 0, dir: Right}\ngoal: {x: 9, y: 9}\n",
	}
	for name, body := range bad {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	levels, err := Collection(dir)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "01-first-bend", levels[0].ID)

	for name := range bad {
		parsed, err := NewLoader(dir).LoadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Error(t, ValidateStructure(parsed), name)
	}
}

func TestFind(t *testing.T) {
	l, err := Find("", "3")
	require.NoError(t, err)
	assert.Equal(t, "03-around-the-block", l.ID)

	l, err = Find("", "08-the-wall")
	require.NoError(t, err)
	assert.Equal(t, "The Wall", l.Title())

	_, err = Find("", "42")
	assert.Error(t, err)

	_, err = Find(t.TempDir(), "1")
	assert.Error(t, err)
}

func TestBoardAndCanHoldPipe(t *testing.T) {
	l, _ := BuiltinByID("01-first-bend")
	b := l.Board()

	assert.Equal(t, engine.KindCannon, b.At(engine.C(1, 4)).Kind)
	assert.Equal(t, engine.Pipe(engine.PipeLeftUp), b.At(engine.C(7, 5)))
	assert.Equal(t, engine.KindEmpty, b.At(engine.C(2, 4)).Kind, "roads are empty to the engine")

	assert.True(t, l.CanHoldPipe(engine.C(2, 4)))
	assert.False(t, l.CanHoldPipe(engine.C(5, 2)))
	assert.False(t, l.CanHoldPipe(engine.C(7, 5)))
	assert.False(t, l.CanHoldPipe(engine.C(-1, 0)))
	assert.Equal(t, 0, l.PipeIndex(engine.C(7, 5)))
	assert.Equal(t, -1, l.PipeIndex(engine.C(0, 0)))
}

func TestRenderASCII(t *testing.T) {
	l, _ := BuiltinByID("01-first-bend")
	sol, err := Solve(l, 100)
	require.NoError(t, err)

	expected := "First Bend (01-first-bend) 10x8\n" +
		"··········\n" +
		"······○···\n" +
		"·····▲•···\n" +
		"······•···\n" +
		"·→••••╯···\n" +
		"··········\n" +
		"··········\n" +
		"··········\n"
	assert.Equal(t, expected, RenderASCII(sol.Level, sol.Trace.Path))

	plain := RenderASCII(l, nil)
	assert.Contains(t, plain, "·→*****···\n")
	assert.Contains(t, plain, "·······╯··\n")
}
