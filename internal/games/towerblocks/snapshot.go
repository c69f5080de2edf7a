package towerblocks

import "github.com/vovakirdan/tower-blocks/internal/core"

// Snapshot is a read-only view of one tick, consumed by renderers.
type Snapshot struct {
	Tick uint64
	Mode Mode

	BlockState    BlockState
	BlockPos      core.Vec2
	BlockRotation float64 // Degrees
	BlockVisible  bool
	Pivot         core.Vec2
	Hook          core.Vec2
	ShowRope      bool

	Floors       []Floor // Visible floors, base-most first
	FirstVisible int     // Stack index of Floors[0]
	Size         int
	Onscreen     int
	TowerX       float64
	TowerY       float64
	TowerLean    float64
	TowerVisible bool
	Wobbling     bool
	Scrolling    bool

	CameraY    float64
	Score      int
	Lives      int // -1 in practice mode
	Placed     int
	GoldenHits int
	Force      float64
	Flash      bool // Golden banner is up

	Descending bool
	Paused     bool
	GameOver   bool
	TooSmall   bool

	Skin Skin
}

// Snapshot captures the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	floors, first := g.tower.VisibleFloors()
	st := g.State()
	state := g.block.State()

	return Snapshot{
		Tick: g.tick,
		Mode: g.mode,

		BlockState:    state,
		BlockPos:      g.block.Position(),
		BlockRotation: g.block.Rotation(),
		BlockVisible:  !g.descending && state != StateScrolling && !(g.gameOver && state == StateMissed),
		Pivot:         g.block.Pivot(),
		Hook:          g.block.Hook(),
		ShowRope:      !g.descending && state == StateReady,

		Floors:       floors,
		FirstVisible: first,
		Size:         g.tower.Size(),
		Onscreen:     g.tower.Onscreen(),
		TowerX:       g.tower.X(),
		TowerY:       g.tower.Y(),
		TowerLean:    g.tower.Lean(),
		TowerVisible: g.tower.Visible() && !g.descending,
		Wobbling:     g.tower.IsWobbling(),
		Scrolling:    g.tower.IsScrolling(),

		CameraY:    g.cameraY,
		Score:      g.score,
		Lives:      st.Lives,
		Placed:     g.placed,
		GoldenHits: g.goldenHits,
		Force:      g.force,
		Flash:      g.flash > 0,

		Descending: g.descending,
		Paused:     g.paused,
		GameOver:   g.gameOver,
		TooSmall:   g.tooSmall,

		Skin: g.skin,
	}
}
