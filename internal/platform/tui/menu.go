package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pipeshot/internal/core"
	"github.com/vovakirdan/pipeshot/internal/level"
	"github.com/vovakirdan/pipeshot/internal/storage"
)

// minWidthForPreview is the terminal width needed to show the level preview
// next to the list.
const minWidthForPreview = 70

// MenuItem is one selectable level in the menu.
type MenuItem struct {
	Index  int
	ID     string
	Title  string
	Solved bool
	Shots  int
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels    []level.Level
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
	openStats bool
}

// NewMenuModel creates a level menu. store may be nil, in which case no
// progress is shown.
func NewMenuModel(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, len(levels))
	for i, l := range levels {
		items[i] = MenuItem{Index: i, ID: l.ID, Title: l.Title()}
		if store == nil {
			continue
		}
		if st, err := store.LevelStats(l.ID); err == nil {
			items[i].Solved = st.Wins > 0
			items[i].Shots = st.Attempts
		}
	}

	return MenuModel{
		levels:    levels,
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	solvedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var list strings.Builder
	for i, item := range m.items {
		mark := "  "
		if item.Solved {
			mark = solvedStyle.Render("✓ ")
		}
		line := fmt.Sprintf("%2d. %s", i+1, item.Title)
		if item.Shots > 0 {
			line += fmt.Sprintf(" (%d shots)", item.Shots)
		}
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		list.WriteString(mark + line + "\n")
	}

	body := list.String()
	if m.width >= minWidthForPreview && len(m.levels) > 0 {
		previewStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		preview := previewStyle.Render(level.RenderASCII(m.levels[m.cursor], nil))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "   ", preview)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P I P E S H O T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Play  |  Tab: Stats  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if user requested the statistics screen.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Index      int // selected level, -1 if none
	Config     core.RuntimeConfig
	WantsStats bool
	Quit       bool
}

// RunMenu shows the level menu and returns the user's choice.
func RunMenu(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(levels, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Index: -1, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Index: -1, Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Index:      -1,
		Config:     m.Config(),
		WantsStats: m.WantsStats(),
		Quit:       m.IsQuitting(),
	}
	if sel := m.Selected(); sel != nil {
		result.Index = sel.Index
	}
	return result, nil
}
