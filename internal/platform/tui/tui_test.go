package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pipeshot/internal/config"
	"github.com/vovakirdan/pipeshot/internal/core"
	"github.com/vovakirdan/pipeshot/internal/game"
	"github.com/vovakirdan/pipeshot/internal/level"
	"github.com/vovakirdan/pipeshot/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim left", runes("h"), core.ActionLeft, false},
		{"wasd right", runes("d"), core.ActionRight, false},
		{"space rotates", tea.KeyMsg{Type: tea.KeySpace}, core.ActionRotate, false},
		{"grab", runes("g"), core.ActionGrab, false},
		{"fire", runes("f"), core.ActionFire, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"next level", runes("n"), core.ActionNext, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v,%v, expected %v,%v", tt.msg.String(), action, quit, tt.expected, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionStats {
		t.Errorf("tab = %v, expected MenuActionStats", got)
	}
	if got := km.MapKeyToMenuAction(runes("j")); got != MenuActionDown {
		t.Errorf("j = %v, expected MenuActionDown", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter = %v, expected MenuActionSelect", got)
	}
}

func newTestGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(level.Builtin(), config.Default())
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestModelFeedsInputOnTick(t *testing.T) {
	g := newTestGame(t)
	var m tea.Model = NewModel(g, core.DefaultConfig())

	start := g.Cursor()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if g.Cursor() != start {
		t.Fatalf("cursor moved before the tick")
	}

	m, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if g.Cursor().Col != start.Col-1 {
		t.Errorf("cursor = %v after tick, expected one column left of %v", g.Cursor(), start)
	}

	view := m.View()
	if !strings.Contains(view, "First Bend") {
		t.Errorf("View() does not show the level title")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := newTestGame(t)

	m, _ := NewModel(g, core.DefaultConfig()).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(Model).WantsBack() {
		t.Error("esc did not request the menu")
	}

	m, cmd := NewModel(g, core.DefaultConfig()).Update(runes("q"))
	if cmd == nil || m.(Model).WantsBack() {
		t.Error("q should quit without going back")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestMenuSelection(t *testing.T) {
	levels := level.Builtin()
	var m tea.Model = NewMenuModel(levels, nil, core.DefaultConfig())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.View(), levels[2].Title()) {
		t.Errorf("menu does not list %q", levels[2].Title())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("selecting a level did not quit the menu")
	}
	sel := m.(MenuModel).Selected()
	if sel == nil || sel.Index != 2 || sel.ID != levels[2].ID {
		t.Errorf("Selected() = %+v, expected index 2", sel)
	}
}

func TestMenuShowsProgress(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "shots.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	levels := level.Builtin()
	if err := store.SaveShot(levels[0].ID, "", true, "", 8); err != nil {
		t.Fatalf("SaveShot() failed: %v", err)
	}

	m := NewMenuModel(levels, store, core.DefaultConfig())
	if !m.items[0].Solved || m.items[0].Shots != 1 {
		t.Errorf("first item = %+v, expected solved with 1 shot", m.items[0])
	}
	if m.items[1].Solved {
		t.Errorf("second item = %+v, expected unsolved", m.items[1])
	}
}

func TestStatsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "shots.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	levels := level.Builtin()[:2]
	for _, won := range []bool{false, true} {
		if err := store.SaveShot(levels[1].ID, "", won, "exited field", 7); err != nil {
			t.Fatalf("SaveShot() failed: %v", err)
		}
	}
	if err := store.SaveShot("custom-level", "", false, "hit cannon", 2); err != nil {
		t.Fatalf("SaveShot() failed: %v", err)
	}

	m := NewStatsModel(store, levels, levels[1].ID, 100, 30)
	if len(m.entries) != 3 {
		t.Fatalf("entries = %d, expected the two levels plus custom-level", len(m.entries))
	}
	if m.summary.Attempts != 2 || m.summary.Wins != 1 || m.summary.BestSteps != 7 {
		t.Errorf("summary = %+v", m.summary)
	}
	if len(m.shots) != 2 {
		t.Errorf("shots = %d, expected 2", len(m.shots))
	}
	if !strings.Contains(m.View(), "Best: 7 steps") {
		t.Errorf("View() lacks the best step count")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	sm := next.(StatsModel)
	if sm.entries[sm.cursor].ID != "custom-level" || sm.summary.Attempts != 1 {
		t.Errorf("after tab: level %s, summary %+v", sm.entries[sm.cursor].ID, sm.summary)
	}

	back, _ := sm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !back.(StatsModel).IsGoingBack() {
		t.Error("esc did not go back")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "c")
	out := RenderScreen(s)
	if !strings.Contains(out, "c") || strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() = %q", out)
	}
}
