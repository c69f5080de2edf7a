package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tower-blocks/internal/core"
	"github.com/vovakirdan/tower-blocks/internal/storage"
)

// volumeStep is how much one left/right press changes a volume.
const volumeStep = 10

// settingsRow is a line of the settings screen.
type settingsRow int

const (
	rowMusic settingsRow = iota
	rowSound
	rowBackground
	rowCount
)

// SettingsModel is the Bubble Tea model for the settings screen.
// Changes are applied to audio immediately and saved on leaving.
type SettingsModel struct {
	deps      Deps
	settings  storage.Settings
	row       settingsRow
	bar       progress.Model
	keyMapper *KeyMapper
	width     int
	saveErr   error
	quitting  bool
	back      bool
}

// NewSettingsModel loads the stored settings.
func NewSettingsModel(deps Deps, width int) SettingsModel {
	st := storage.DefaultSettings()
	if deps.Store != nil {
		if loaded, err := deps.Store.LoadSettings(); err == nil {
			st = loaded
		}
	}
	return SettingsModel{
		deps:      deps,
		settings:  st,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30)),
		keyMapper: NewKeyMapper(),
		width:     width,
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.save()
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.save()
			m.back = true
			return m, tea.Quit
		case MenuActionUp:
			m.row = (m.row + rowCount - 1) % rowCount
		case MenuActionDown:
			m.row = (m.row + 1) % rowCount
		case MenuActionLeft:
			m.adjust(-1)
		case MenuActionRight:
			m.adjust(1)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// adjust moves the current row one step in dir.
func (m *SettingsModel) adjust(dir int) {
	switch m.row {
	case rowMusic:
		m.settings.MusicVolume = min(100, max(0, m.settings.MusicVolume+dir*volumeStep))
	case rowSound:
		m.settings.SoundVolume = min(100, max(0, m.settings.SoundVolume+dir*volumeStep))
	case rowBackground:
		m.settings.Background = NextBackground(m.settings.Background, dir)
	}
	if m.deps.Audio != nil {
		m.deps.Audio.SetVolumes(m.settings.SoundVolume, m.settings.MusicVolume)
	}
}

func (m *SettingsModel) save() {
	if m.deps.Store == nil {
		return
	}
	if err := m.deps.Store.SaveSettings(m.settings); err != nil {
		m.saveErr = err
		m.deps.logger().Warn("could not save settings", "error", err)
	}
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(title.Render(centerText("SETTINGS", m.width)))
	b.WriteString("\n\n")

	label := func(r settingsRow, name string) string {
		if r == m.row {
			return menuCursor.Render(fmt.Sprintf("> %-12s", name))
		}
		return fmt.Sprintf("  %-12s", name)
	}

	b.WriteString(label(rowMusic, "Music"))
	b.WriteString(m.bar.ViewAs(float64(m.settings.MusicVolume) / 100))
	b.WriteString(fmt.Sprintf(" %3d%%\n", m.settings.MusicVolume))

	b.WriteString(label(rowSound, "Sound"))
	b.WriteString(m.bar.ViewAs(float64(m.settings.SoundVolume) / 100))
	b.WriteString(fmt.Sprintf(" %3d%%\n", m.settings.SoundVolume))

	b.WriteString(label(rowBackground, "Background"))
	sky := PaletteFor(m.settings.Background)[core.ColorSky]
	b.WriteString(sky.Render(fmt.Sprintf("< %s >", m.settings.Background)))
	b.WriteString("\n\n")

	if m.saveErr != nil {
		b.WriteString(fmt.Sprintf("Could not save: %v\n", m.saveErr))
	}
	b.WriteString(menuDim.Render("Up/Down: Choose  |  Left/Right: Adjust  |  Esc: Save & back"))
	b.WriteString("\n")
	return b.String()
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() storage.Settings {
	return m.settings
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SettingsModel) IsGoingBack() bool {
	return m.back
}

// RunSettings runs the settings screen and returns the saved settings.
func RunSettings(deps Deps, width int) (st storage.Settings, goBack bool, err error) {
	p := tea.NewProgram(NewSettingsModel(deps, width), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return storage.DefaultSettings(), false, err
	}
	m, ok := final.(SettingsModel)
	if !ok {
		return storage.DefaultSettings(), false, nil
	}
	return m.Settings(), m.IsGoingBack(), nil
}
