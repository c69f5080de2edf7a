package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tower-blocks/internal/audio"
	"github.com/vovakirdan/tower-blocks/internal/core"
	"github.com/vovakirdan/tower-blocks/internal/games/towerblocks"
	"github.com/vovakirdan/tower-blocks/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"down drops", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDrop, false},
		{"enter drops", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionDrop, false},
		{"s drops", runeKey("s"), core.ActionDrop, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey("d"), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyDown}, &frame) {
		t.Error("drop should not quit")
	}
	if !frame.Has(core.ActionDrop) {
		t.Error("frame should hold the drop action")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should quit")
	}
}

func TestSpaceDrops(t *testing.T) {
	km := NewKeyMapper()
	if action, _ := km.MapKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}); action != core.ActionDrop {
		t.Errorf("space = %v, want Drop", action)
	}
}

func TestKeyHints(t *testing.T) {
	keys := DefaultGameKeys()
	hints := keyHints(keys)
	for _, want := range []string{"space drop", "p pause", "q quit"} {
		if !strings.Contains(hints, want) {
			t.Errorf("keyHints() = %q, missing %q", hints, want)
		}
	}

	keys.Restart.SetEnabled(false)
	if strings.Contains(keyHints(keys), "restart") {
		t.Error("disabled bindings should be hidden")
	}
}

func TestNextBackground(t *testing.T) {
	tests := []struct {
		cur  string
		step int
		want string
	}{
		{"day", 1, "sunset"},
		{"night", 1, "day"},
		{"day", -1, "night"},
		{"unknown", 1, "sunset"},
	}
	for _, tt := range tests {
		if got := NextBackground(tt.cur, tt.step); got != tt.want {
			t.Errorf("NextBackground(%q, %d) = %q, want %q", tt.cur, tt.step, got, tt.want)
		}
	}
}

func TestPaletteFor(t *testing.T) {
	for _, bg := range Backgrounds {
		p := PaletteFor(bg)
		for _, c := range []core.Color{core.ColorDefault, core.ColorGold, core.ColorSky, core.ColorBrown} {
			if _, ok := p[c]; !ok {
				t.Errorf("palette %q is missing color %d", bg, c)
			}
		}
	}

	day := PaletteFor("day")[core.ColorSky].GetForeground()
	night := PaletteFor("night")[core.ColorSky].GetForeground()
	if day == night {
		t.Error("day and night skies should differ")
	}
	if PaletteFor("bogus")[core.ColorSky].GetForeground() != day {
		t.Error("unknown background should fall back to the day sky")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Score: 3")
	s.DrawTextColored(0, 1, "GOLD", core.ColorGold)

	out := RenderScreen(s, PaletteFor("day"))
	if !strings.Contains(out, "Score: 3") || !strings.Contains(out, "GOLD") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 lines, got %d newlines", got)
	}
}

func TestTickInterval(t *testing.T) {
	if got := tickInterval(120).Microseconds(); got != 8333 {
		t.Errorf("tickInterval(120) = %dus, want 8333us", got)
	}
	if tickInterval(0) != tickInterval(120) {
		t.Error("non-positive tick rate should use the default")
	}
}

// scriptedGame replays canned step results.
type scriptedGame struct {
	id     string
	lives  int
	steps  []core.StepResult
	resets int
	state  core.GameState
}

func (g *scriptedGame) ID() string    { return g.id }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Lives: g.lives}
}

func (g *scriptedGame) Step(core.InputFrame) core.StepResult {
	if len(g.steps) == 0 {
		return core.StepResult{State: g.state}
	}
	res := g.steps[0]
	g.steps = g.steps[1:]
	g.state = res.State
	return res
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.Clear() }
func (g *scriptedGame) State() core.GameState   { return g.state }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func placed(golden bool, points, score, lives, floors int) core.StepResult {
	return core.StepResult{
		State:  core.GameState{Score: score, Lives: lives, Floors: floors},
		Events: []core.Event{{Kind: core.EventFloorPlaced, Golden: golden, Points: points}},
	}
}

func TestModelCreditsCoinsAndSavesRun(t *testing.T) {
	store := openStore(t)
	sound := audio.NewManager(audio.Options{Mute: true, SoundVolume: 80})
	game := &scriptedGame{
		id:    "towerblocks",
		lives: 3,
		steps: []core.StepResult{
			placed(false, 1, 1, 3, 1),
			placed(true, 2, 3, 3, 2),
			{
				State:  core.GameState{Score: 3, Lives: 0, GameOver: true},
				Events: []core.Event{{Kind: core.EventLifeLost}, {Kind: core.EventGameOver}},
			},
		},
	}

	m := NewModel(game, Deps{Store: store, Audio: sound}, core.DefaultConfig(), "day")
	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}

	if m.Coins() != 3 {
		t.Errorf("model coins = %d, want 3", m.Coins())
	}
	if coins, _ := store.Coins(); coins != 3 {
		t.Errorf("wallet = %d, want 3", coins)
	}
	if !m.State().GameOver {
		t.Error("expected game over state")
	}

	runs, err := store.TopScores("towerblocks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	if runs[0].Score != 3 || runs[0].Floors != 2 || runs[0].Golden != 1 {
		t.Errorf("unexpected run record: %+v", runs[0])
	}

	if sound.Played(audio.SoundBuild) != 1 || sound.Played(audio.SoundGold) != 1 || sound.Played(audio.SoundOver) != 1 {
		t.Errorf("unexpected sounds: build=%d gold=%d over=%d",
			sound.Played(audio.SoundBuild), sound.Played(audio.SoundGold), sound.Played(audio.SoundOver))
	}
}

func TestModelPracticeEarnsNoCoins(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{
		id:    "towerblocks_practice",
		lives: -1,
		steps: []core.StepResult{placed(true, 2, 2, -1, 1)},
	}

	m := NewModel(game, Deps{Store: store}, core.DefaultConfig(), "night")
	m = tick(t, m)

	if coins, _ := store.Coins(); coins != 0 {
		t.Errorf("practice should not earn coins, wallet = %d", coins)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &scriptedGame{
		id:    "towerblocks",
		lives: 3,
		steps: []core.StepResult{{State: core.GameState{GameOver: true}, Events: []core.Event{{Kind: core.EventGameOver}}}},
	}
	m := NewModel(game, Deps{}, core.DefaultConfig(), "day")
	m = tick(t, m)

	// Restart is ignored while playing, accepted after game over.
	next, _ := m.Update(runeKey("r"))
	m = next.(Model)
	m = tick(t, m)

	if game.resets != 2 {
		t.Errorf("expected a second reset, got %d resets", game.resets)
	}
	if m.State().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &scriptedGame{id: "towerblocks", lives: 3}
	m := NewModel(game, Deps{}, core.DefaultConfig(), "day")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(Model).IsGoingBack() {
		t.Error("esc should leave to the menu")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after leaving")
	}

	_, cmd = m.Update(runeKey("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	towerblocks.SetSkin(towerblocks.DefaultSkinID)
	game := towerblocks.New()
	m := NewModel(game, Deps{}, core.DefaultConfig(), "day")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
	if view := m.View(); view == "" {
		t.Error("view should render the game")
	}
}

func TestBuyOrSelect(t *testing.T) {
	store := openStore(t)
	t.Cleanup(func() { towerblocks.SetSkin(towerblocks.DefaultSkinID) })

	ice, _ := towerblocks.LookupSkin("ice")
	if _, err := BuyOrSelect(store, ice); err == nil {
		t.Fatal("buying without coins should fail")
	}

	store.AddCoins(ice.Price + 5)
	out, err := BuyOrSelect(store, ice)
	if err != nil {
		t.Fatalf("BuyOrSelect() failed: %v", err)
	}
	if !out.Bought || !out.Selected || out.Coins != 5 {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if skin, _ := store.SelectedSkin(); skin != "ice" {
		t.Errorf("selected skin = %q, want ice", skin)
	}

	classic, _ := towerblocks.LookupSkin(towerblocks.DefaultSkinID)
	out, err = BuyOrSelect(store, classic)
	if err != nil {
		t.Fatalf("BuyOrSelect(classic) failed: %v", err)
	}
	if out.Bought || !out.Selected || out.Coins != 5 {
		t.Errorf("selecting an owned skin should not charge: %+v", out)
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(Deps{}, core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select should close the menu")
	}
	sel := next.(MenuModel).Selected()
	if sel == nil || sel.Choice != ChoicePractice || sel.GameID != "towerblocks_practice" {
		t.Errorf("unexpected selection: %+v", sel)
	}
}

func TestMenuHeaderFromStore(t *testing.T) {
	store := openStore(t)
	if _, err := store.AddCoins(12); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(Deps{Store: store}, core.DefaultConfig())
	if m.coins != 12 {
		t.Errorf("coins = %d, expected 12", m.coins)
	}
}

func TestMenuLogsStorageErrors(t *testing.T) {
	store := openStore(t)
	store.Close()

	var buf bytes.Buffer
	m := NewMenuModel(Deps{Store: store, Logger: log.New(&buf)}, core.DefaultConfig())
	if m.coins != 0 || m.best != 0 {
		t.Errorf("header = %d coins, best %d; expected zeros", m.coins, m.best)
	}
	out := buf.String()
	for _, want := range []string{"could not load coins", "could not load high score"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsAdjust(t *testing.T) {
	store := openStore(t)
	m := NewSettingsModel(Deps{Store: store}, 80)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight}) // music +10
	next, _ = next.(SettingsModel).Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(SettingsModel).Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(SettingsModel).Update(tea.KeyMsg{Type: tea.KeyRight}) // background
	next, _ = next.(SettingsModel).Update(tea.KeyMsg{Type: tea.KeyEsc})

	sm := next.(SettingsModel)
	if !sm.IsGoingBack() {
		t.Error("esc should leave settings")
	}
	saved, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if saved.MusicVolume != 60 || saved.Background != "sunset" {
		t.Errorf("unexpected saved settings: %+v", saved)
	}
}
