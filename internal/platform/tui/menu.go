package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tower-blocks/internal/core"
)

// MenuChoice identifies a main menu entry.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceClassic
	ChoicePractice
	ChoiceShop
	ChoiceSettings
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
	GameID string // Set for entries that start a round
}

// DefaultMenuItems returns the main menu in display order.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Choice: ChoiceClassic, Title: "Play", GameID: "towerblocks"},
		{Choice: ChoicePractice, Title: "Practice", GameID: "towerblocks_practice"},
		{Choice: ChoiceShop, Title: "Shop"},
		{Choice: ChoiceSettings, Title: "Settings"},
		{Choice: ChoiceScores, Title: "High Scores"},
		{Choice: ChoiceQuit, Title: "Quit"},
	}
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	coins     int
	best      int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model. Storage failures are logged and
// the header falls back to zeros.
func NewMenuModel(deps Deps, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:     DefaultMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store := deps.Store; store != nil {
		var err error
		if m.coins, err = store.Coins(); err != nil {
			deps.logger().Warn("could not load coins", "error", err)
		}
		if m.best, err = store.HighScore("towerblocks"); err != nil {
			deps.logger().Warn("could not load high score", "error", err)
		}
	}
	return m
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
		selected := m.items[m.cursor]
		if selected.Choice == ChoiceQuit {
			m.quitting = true
		} else {
			m.selected = &selected
		}
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("T O W E R   B L O C K S", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Coins: %d   Best: %d", m.coins, m.best), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursor.Render(centerText("> "+item.Title, m.width))
		} else {
			line = centerText(line, m.width)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuDim.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width)))
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

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	GameID string
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(deps Deps, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(deps, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	sel := m.Selected()
	return MenuResult{Choice: sel.Choice, GameID: sel.GameID, Config: m.Config()}, nil
}
