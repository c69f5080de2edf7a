package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tower-blocks/internal/games/towerblocks"
	"github.com/vovakirdan/tower-blocks/internal/storage"
)

// ShopKeyMap defines the key bindings for the skin shop.
type ShopKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Choose}, {k.Back, k.Quit}}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "prev skin")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "next skin")),
		Choose: key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "buy / select")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShopOutcome describes what choosing a skin did.
type ShopOutcome struct {
	Bought   bool
	Selected bool
	Coins    int
}

// BuyOrSelect buys a locked skin, then selects it. Owned skins are just selected.
// The selection is applied to games created afterwards.
func BuyOrSelect(store *storage.Store, skin towerblocks.Skin) (ShopOutcome, error) {
	var out ShopOutcome
	owned, err := store.IsSkinUnlocked(skin.ID)
	if err != nil {
		return out, err
	}
	if !owned {
		if out.Coins, err = store.BuySkin(skin.ID, skin.Price); err != nil {
			return out, err
		}
		out.Bought = true
	}
	if err := store.SelectSkin(skin.ID); err != nil {
		return out, err
	}
	towerblocks.SetSkin(skin.ID)
	out.Selected = true
	if !out.Bought {
		out.Coins, err = store.Coins()
	}
	return out, err
}

// ShopModel is the Bubble Tea model for the skin shop.
type ShopModel struct {
	store    *storage.Store
	skins    []towerblocks.Skin
	owned    map[string]bool
	selected string
	coins    int
	status   string
	table    table.Model
	help     help.Model
	keys     ShopKeyMap
	palette  Palette
	width    int
	height   int
	quitting bool
	back     bool
}

// NewShopModel creates a shop over the skin catalog.
func NewShopModel(store *storage.Store, width, height int) ShopModel {
	m := ShopModel{
		store:    store,
		skins:    towerblocks.Skins(),
		selected: towerblocks.DefaultSkinID,
		help:     help.New(),
		keys:     DefaultShopKeyMap(),
		palette:  PaletteFor("day"),
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *ShopModel) createTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Skin", Width: 10},
			{Title: "Price", Width: 7},
			{Title: "Preview", Width: 9},
			{Title: "Status", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(min(len(m.skins)+1, max(3, m.height-8))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload refreshes ownership and the wallet from storage.
func (m *ShopModel) reload() {
	m.owned = map[string]bool{towerblocks.DefaultSkinID: true}
	if m.store != nil {
		if ids, err := m.store.UnlockedSkins(); err == nil {
			for _, id := range ids {
				m.owned[id] = true
			}
		}
		if id, err := m.store.SelectedSkin(); err == nil {
			m.selected = id
		}
		if coins, err := m.store.Coins(); err == nil {
			m.coins = coins
		}
	}

	rows := make([]table.Row, len(m.skins))
	for i, s := range m.skins {
		status := "locked"
		switch {
		case s.ID == m.selected:
			status = "selected"
		case m.owned[s.ID]:
			status = "owned"
		}
		preview := []rune{s.Part(0), s.Part(1), s.Part(2), s.Part(3)}
		rows[i] = table.Row{s.Name, fmt.Sprintf("%d", s.Price), string(preview), status}
	}
	m.table.SetRows(rows)
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			m.choose()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.reload()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// choose buys or selects the highlighted skin.
func (m *ShopModel) choose() {
	if m.store == nil {
		m.status = "Shop unavailable: no save data"
		return
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.skins) {
		return
	}
	skin := m.skins[idx]

	out, err := BuyOrSelect(m.store, skin)
	switch {
	case errors.Is(err, storage.ErrInsufficientCoins):
		m.status = fmt.Sprintf("Not enough coins for %s (%d needed)", skin.Name, skin.Price)
	case err != nil:
		m.status = "Error: " + err.Error()
	case out.Bought:
		m.status = fmt.Sprintf("Bought %s!", skin.Name)
	default:
		m.status = fmt.Sprintf("%s selected", skin.Name)
	}
	m.reload()
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(title.Render(centerText("SKIN SHOP", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Coins: %d", m.coins), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(box.Render(m.table.View()))
	b.WriteString("\n")

	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.skins) {
		s := m.skins[idx]
		var tower strings.Builder
		for i := 4; i >= 0; i-- {
			tower.WriteString(strings.Repeat(string(s.Part(i)), 6))
			tower.WriteString("\n")
		}
		b.WriteString(m.palette[s.Color].Render(strings.TrimRight(tower.String(), "\n")))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.back
}

// RunShop runs the shop screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunShop(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewShopModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ShopModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
