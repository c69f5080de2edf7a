// Package towerblocks implements the stack-the-block tower game.
// A block swings on a rope; the player releases it and it must land aligned
// on the growing tower. Misses, overflows and collapses cost lives.
package towerblocks

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tower-blocks/internal/config"
	"github.com/vovakirdan/tower-blocks/internal/core"
	"github.com/vovakirdan/tower-blocks/internal/registry"
)

// Mode represents the game mode.
type Mode int

const (
	ModeClassic  Mode = iota // Lives, game over, coins
	ModePractice             // No life tracking, the stack simply restarts
)

// Minimum terminal size needed to draw a meaningful tower
const (
	minScreenW = 30
	minScreenH = 15
)

// goldenFlashTicks is how long the golden banner stays up (one second at 120 fps).
const goldenFlashTicks = 120

// sessionConfig is the validated config installed via SetConfig
var sessionConfig *config.TowerConfig

// selectedSkin stores the skin chosen in the shop or via CLI
var selectedSkin = DefaultSkinID

// SetConfig installs the config used by games created without one.
// An invalid config is rejected and the previous one stays in place.
func SetConfig(cfg config.TowerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sessionConfig = &cfg
	return nil
}

// SetSkin sets the skin used by games created afterwards.
// Unknown IDs fall back to the default skin.
func SetSkin(id string) {
	if _, ok := LookupSkin(id); !ok {
		id = DefaultSkinID
	}
	selectedSkin = id
}

// Game is the controller that advances Block and Tower once per tick.
type Game struct {
	mode  Mode
	fixed *config.TowerConfig // Set by NewWithConfig, bypasses the loader

	cfg    config.TowerConfig
	screen core.RuntimeConfig
	ramp   *config.ForceRamp
	skin   Skin

	block *Block
	tower *Tower
	force float64

	score      int
	lives      int
	placed     int
	goldenHits int
	tick       uint64
	flash      int

	cameraY    float64
	descending bool
	gameOver   bool
	paused     bool
	tooSmall   bool

	collapseEdge core.Edge
	lifeEdge     core.Edge
	events       []core.Event
}

// New creates a classic mode game. It plays with the config installed by
// SetConfig, or with the defaults when none was installed.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewPractice creates a practice mode game without lives.
func NewPractice() *Game {
	return &Game{mode: ModePractice}
}

// NewWithConfig creates a game that uses cfg instead of the session config.
func NewWithConfig(cfg config.TowerConfig, mode Mode) *Game {
	return &Game{mode: mode, fixed: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return "towerblocks_practice"
	}
	return "towerblocks"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Tower Blocks (Practice)"
	}
	return "Tower Blocks"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(screen core.RuntimeConfig) {
	g.screen = screen
	g.tooSmall = screen.ScreenW < minScreenW || screen.ScreenH < minScreenH

	g.cfg = g.loadConfig()
	g.ramp = config.NewForceRamp(g.cfg.Physics, g.cfg.Difficulty)
	g.skin = SkinByID(selectedSkin)

	g.force = g.ramp.Clamp(g.cfg.Physics.InitialForce)
	g.tower = NewTower(g.cfg)
	g.block = NewBlock(g.cfg, g.force)

	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.placed = 0
	g.goldenHits = 0
	g.tick = 0
	g.flash = 0
	g.cameraY = 0
	g.descending = false
	g.gameOver = false
	g.paused = false
	g.collapseEdge.Reset()
	g.lifeEdge.Reset()
	g.events = g.events[:0]
}

// Resize adapts to a new terminal size without restarting the round.
// The world is scaled at render time, so only the size check changes.
func (g *Game) Resize(screen core.RuntimeConfig) {
	g.screen = screen
	g.tooSmall = screen.ScreenW < minScreenW || screen.ScreenH < minScreenH
}

func (g *Game) loadConfig() config.TowerConfig {
	switch {
	case g.fixed != nil:
		return *g.fixed
	case sessionConfig != nil:
		return *sessionConfig
	}
	return config.DefaultTowerConfig()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Input arriving during the camera descent is dropped, pause included
	if in.Has(core.ActionPause) && !g.descending {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.flash > 0 {
		g.flash--
	}

	if g.descending {
		g.descend()
		return g.result()
	}

	if in.Has(core.ActionDrop) {
		g.block.Release()
	}

	g.updateBlock()

	if g.block.State() == StateScrolling && g.tower.ShouldScroll() {
		g.tower.Scroll()
		if g.tower.IsScrolling() {
			g.cameraY += g.cfg.Camera.ScrollSpeed
		}
	}

	// A floor awaiting retraction does not count toward the wobble trigger
	if g.block.State() != StateToppling || g.block.Retracted() {
		g.tower.Wobble()
	}
	g.checkLosses()

	return g.result()
}

func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State()}
	if len(g.events) > 0 {
		res.Events = g.events
		g.events = nil
	}
	return res
}

func (g *Game) emit(ev core.Event) {
	g.events = append(g.events, ev)
}

// updateBlock runs the per-state block transition for this tick.
func (g *Game) updateBlock() {
	switch g.block.State() {
	case StateReady:
		g.block.Swing()
	case StateDropped:
		if g.block.Fall(g.tower) == StateLanded {
			g.placeFloor()
		}
	case StateToppling:
		if !g.block.Retracted() {
			g.retractFloor()
		}
		g.block.FallAway()
	case StateScrolling:
		if !g.tower.IsScrolling() {
			g.respawn()
		}
	case StateMissed:
		// Life loss is handled by checkLosses
	}
}

// placeFloor builds the landed block into the tower and decides whether it
// stays or topples off its support.
func (g *Game) placeFloor() {
	if st := g.block.State(); st != StateLanded {
		panic(fmt.Sprintf("towerblocks: build requested while block is %s", st))
	}

	below, hasBelow := g.tower.Top()
	center := g.block.LastCenterX()
	golden := g.block.IsGolden()
	g.tower.Build(center, golden)

	if hasBelow && Overhangs(g.cfg.Block, center, below.OffsetX) {
		g.block.Topple(ToppleSide(center, below.OffsetX))
		return
	}

	g.block.Settle(g.tower)
	points := g.cfg.Gameplay.Points
	if golden {
		points = g.cfg.Gameplay.GoldenPoints
		g.goldenHits++
		g.flash = goldenFlashTicks
	}
	g.score += points
	g.placed++
	g.emit(core.Event{Kind: core.EventFloorPlaced, Golden: golden, Points: points})
}

// retractFloor takes back the floor a toppling block was built into.
func (g *Game) retractFloor() {
	if st := g.block.State(); st != StateToppling {
		panic(fmt.Sprintf("towerblocks: retract requested while block is %s", st))
	}
	g.tower.Unbuild()
	g.block.MarkRetracted()
	g.emit(core.Event{Kind: core.EventFloorToppled, Direction: g.block.ToppleSide()})
}

// respawn ramps the drive and hangs the next block.
func (g *Game) respawn() {
	g.force = g.ramp.Next(g.force)
	g.block.Respawn(g.tower.Size(), g.force)
	if g.tower.Size() >= g.cfg.Camera.ScrollMinFloors {
		g.tower.Reset()
	}
}

// checkLosses evaluates collapse and life-loss conditions after the update.
func (g *Game) checkLosses() {
	dir := core.DirNone
	if g.block.State() != StateToppling || g.block.Retracted() {
		limit := g.cfg.Tower.CollapseWidth
		switch w := g.tower.TotalWidth(); {
		case w < -limit:
			dir = core.DirLeft
		case w > limit:
			dir = core.DirRight
		}
	}
	if dir != core.DirNone {
		g.tower.Collapse(dir)
	}
	if g.collapseEdge.Rise(dir != core.DirNone) {
		g.emit(core.Event{Kind: core.EventTowerCollapsed, Direction: dir})
	}

	ground := g.cfg.Screen.GroundY
	lost := g.tower.Y() > ground ||
		(g.block.State() == StateToppling && g.block.Position().Y > ground) ||
		g.block.State() == StateMissed
	if g.lifeEdge.Rise(lost) {
		g.loseLife()
	}
}

// loseLife hides the tower and either ends the game or starts the descent.
func (g *Game) loseLife() {
	g.tower.Hide()
	g.emit(core.Event{Kind: core.EventLifeLost})

	if g.mode == ModeClassic {
		g.lives--
		if g.lives <= 0 {
			g.lives = 0
			g.gameOver = true
			g.emit(core.Event{Kind: core.EventGameOver})
			return
		}
	}
	g.descending = true
}

// descend eases the camera back to the ground, then rebuilds the round.
func (g *Game) descend() {
	if g.cameraY > 0 {
		g.cameraY = math.Max(0, g.cameraY-g.cfg.Camera.DescentSpeed)
		return
	}
	g.descending = false
	g.tower = NewTower(g.cfg)
	g.block.Respawn(0, g.force)
	g.collapseEdge.Reset()
	g.lifeEdge.Reset()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	lives := g.lives
	if g.mode == ModePractice {
		lives = -1
	}
	floors := 0
	if g.tower != nil {
		floors = g.tower.Size()
	}
	return core.GameState{
		Score:    g.score,
		Lives:    lives,
		Floors:   floors,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Config returns the tuning the current round runs with.
func (g *Game) Config() config.TowerConfig {
	return g.cfg
}

// Register the games with the registry
func init() {
	registry.Register("towerblocks", func() registry.Game {
		return New()
	})
	registry.Register("towerblocks_practice", func() registry.Game {
		return NewPractice()
	})
}
