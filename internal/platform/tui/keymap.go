package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tower-blocks/internal/core"
)

// GameKeys are the bindings active during a round.
type GameKeys struct {
	Drop    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k GameKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Drop, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// keyHints renders bindings as a plain "key action" line for the screen buffer.
func keyHints(k help.KeyMap) string {
	var parts []string
	for _, b := range k.ShortHelp() {
		if b.Enabled() {
			parts = append(parts, b.Help().Key+" "+b.Help().Desc)
		}
	}
	return strings.Join(parts, " · ")
}

// MenuKeys are the bindings shared by the menu and settings screens.
type MenuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultGameKeys returns the in-round bindings.
func DefaultGameKeys() GameKeys {
	return GameKeys{
		// Terminals report the space bar as " " or "space".
		Drop:    key.NewBinding(key.WithKeys(" ", "space", "down", "s", "enter"), key.WithHelp("space", "drop")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// DefaultMenuKeys returns the menu bindings, with vim-style aliases.
func DefaultMenuKeys() MenuKeys {
	return MenuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/h", "less")),
		Right:  key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/l", "more")),
		Select: key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	Game GameKeys
	Menu MenuKeys
}

// NewKeyMapper returns a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Game: DefaultGameKeys(), Menu: DefaultMenuKeys()}
}

// MapKey translates a key to an in-round action. isQuit is set for the
// quit binding, which the shell handles itself.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	g := km.Game
	switch {
	case key.Matches(msg, g.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, g.Drop):
		return core.ActionDrop, false
	case key.Matches(msg, g.Pause):
		return core.ActionPause, false
	case key.Matches(msg, g.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, g.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the key's action in frame and reports a quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MenuAction is a navigation intent on the menu and settings screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	m := km.Menu
	for _, b := range []struct {
		binding key.Binding
		action  MenuAction
	}{
		{m.Quit, MenuActionQuit},
		{m.Up, MenuActionUp},
		{m.Down, MenuActionDown},
		{m.Left, MenuActionLeft},
		{m.Right, MenuActionRight},
		{m.Select, MenuActionSelect},
		{m.Back, MenuActionBack},
	} {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
