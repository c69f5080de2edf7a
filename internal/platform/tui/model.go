package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tower-blocks/internal/audio"
	"github.com/vovakirdan/tower-blocks/internal/core"
	"github.com/vovakirdan/tower-blocks/internal/registry"
	"github.com/vovakirdan/tower-blocks/internal/storage"
)

// Deps bundles the collaborators shared by every screen.
// Any of them may be nil; the shell then skips that side effect.
type Deps struct {
	Store  *storage.Store
	Audio  *audio.Manager
	Logger *log.Logger
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// resizer is implemented by games that adapt to a new size in place.
type resizer interface {
	Resize(cfg core.RuntimeConfig)
}

// Model is the Bubble Tea model running one game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	deps       Deps
	log        *log.Logger
	palette    Palette
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	run        runTally
	coins      int
	quitting   bool
	goingBack  bool
}

// runTally counts what the current round achieved, for the score record.
type runTally struct {
	floors int
	golden int
	saved  bool // Whether the run has been stored for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, deps Deps, cfg core.RuntimeConfig, background string) Model {
	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		deps:       deps,
		log:        deps.logger(),
		palette:    PaletteFor(background),
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	game.Reset(cfg)
	m.gameState = game.State()
	if deps.Store != nil {
		if coins, err := deps.Store.Coins(); err == nil {
			m.coins = coins
		}
	}
	return m
}

// Init starts the music and the tick loop.
func (m Model) Init() tea.Cmd {
	if m.deps.Audio != nil {
		m.deps.Audio.StartMusic()
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.stopMusic()
		return m, tea.Quit
	case action == core.ActionBack:
		m.goingBack = true
		m.stopMusic()
		return m, tea.Quit
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.run = runTally{}
		m.inputFrame.Clear()
		if m.deps.Audio != nil {
			m.deps.Audio.StartMusic()
		}
		m.log.Debug("round restarted", "game", m.game.ID())
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, ev := range result.Events {
		m.dispatch(ev)
	}

	if m.gameState.GameOver && !m.run.saved {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// dispatch forwards one game event to the collaborators.
func (m *Model) dispatch(ev core.Event) {
	m.log.Debug("event", "kind", ev.Kind, "golden", ev.Golden, "points", ev.Points, "dir", ev.Direction)

	if m.deps.Audio != nil {
		m.deps.Audio.Handle(ev)
	}

	switch ev.Kind {
	case core.EventFloorPlaced:
		m.run.floors++
		if ev.Golden {
			m.run.golden++
		}
		m.credit(ev.Points)
	case core.EventGameOver:
		m.stopMusic()
	}
}

// credit adds coins for a placement. Rounds without lives (practice) earn nothing.
func (m *Model) credit(points int) {
	if m.deps.Store == nil || points <= 0 || m.gameState.Lives < 0 {
		return
	}
	coins, err := m.deps.Store.AddCoins(points)
	if err != nil {
		m.log.Warn("could not credit coins", "error", err)
		return
	}
	m.coins = coins
}

// saveRun stores the finished round once.
func (m *Model) saveRun() {
	m.run.saved = true
	if m.deps.Store == nil || m.gameState.Score <= 0 {
		return
	}
	run, err := m.deps.Store.SaveRun(storage.Run{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Floors: m.run.floors,
		Golden: m.run.golden,
	})
	if err != nil {
		m.log.Warn("could not save run", "error", err)
		return
	}
	m.log.Info("run saved", "id", run.RunID, "score", run.Score, "floors", run.Floors)
}

func (m *Model) stopMusic() {
	if m.deps.Audio != nil {
		m.deps.Audio.StopMusic()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".towerblocks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	m.game.Render(m.screen)
	if m.deps.Store != nil && m.gameState.Lives >= 0 {
		wallet := fmt.Sprintf("Coins: %d ", m.coins)
		if x := m.screen.Width() - len(wallet); x > m.screen.Width()/2 {
			m.screen.DrawTextColored(x, 0, wallet, core.ColorGold)
		}
	}
	if m.gameState.Paused {
		m.screen.DrawTextCentered(m.screen.Height()-1, keyHints(m.keys.Game))
	}
	return RenderScreen(m.screen, m.palette)
}

// State returns the last game state seen by the shell.
func (m Model) State() core.GameState {
	return m.gameState
}

// Coins returns the wallet balance as of the last credit.
func (m Model) Coins() int {
	return m.coins
}

// IsGoingBack reports whether the player left to the menu.
func (m Model) IsGoingBack() bool {
	return m.goingBack
}

// Run starts the Bubble Tea program for one game session.
// Returns true if the player pressed back rather than quit.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig, background string) (goBack bool, err error) {
	model := NewModel(game, deps, cfg, background)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
