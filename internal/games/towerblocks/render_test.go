package towerblocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tower-blocks/internal/config"
	"github.com/vovakirdan/tower-blocks/internal/core"
)

func renderGame(g *Game) *core.Screen {
	scr := core.NewScreen(g.screen.ScreenW, g.screen.ScreenH)
	g.Render(scr)
	return scr
}

func TestRenderInitialFrame(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	scr := renderGame(g)

	assert.Contains(t, scr.Row(0), "Score: 0")
	assert.Contains(t, scr.Row(0), "♥♥♥")
	assert.Equal(t, PivotChar, scr.Get(40, 1), "pivot sits at the top center")
	assert.Equal(t, GroundChar, scr.Get(0, scr.Height()-1))
	assert.Equal(t, core.ColorBrown, scr.GetCell(10, scr.Height()-1).Color)
}

func TestRenderPracticeHUD(t *testing.T) {
	g := newTestGame(t, ModePractice)
	scr := renderGame(g)
	assert.Contains(t, scr.Row(0), "Lives: ∞")
}

func TestRenderGoldenFloor(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	g.tower.Build(400, false)
	g.tower.Build(400, true)
	scr := renderGame(g)

	gold, skin := 0, 0
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			switch scr.GetCell(x, y).Color {
			case core.ColorGold:
				gold++
			case g.skin.Color:
				skin++
			}
		}
	}
	assert.Positive(t, gold, "golden floor is highlighted")
	assert.Positive(t, skin, "regular floor and block use the skin color")
}

func TestRenderHiddenTowerAfterLifeLoss(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	g.tower.Build(400, false)
	g.tower.Hide()

	snap := g.Snapshot()
	assert.False(t, snap.TowerVisible)
	assert.Len(t, snap.Floors, 1, "renderer decides visibility, the floor record stays")
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, ModeClassic)

	g.paused = true
	assert.Contains(t, renderGame(g).String(), "PAUSED")

	g.paused = false
	g.gameOver = true
	assert.Contains(t, renderGame(g).String(), "GAME OVER")
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(config.DefaultTowerConfig(), ModeClassic)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 120})

	scr := renderGame(g)
	require.True(t, g.Snapshot().TooSmall)
	assert.True(t, strings.Contains(scr.String(), "Window too small"))
}

func TestRenderSurvivesResize(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	place(t, g, 400)

	for _, size := range [][2]int{{30, 15}, {80, 24}, {160, 50}} {
		scr := core.NewScreen(size[0], size[1])
		assert.NotPanics(t, func() { g.Render(scr) })
		assert.Equal(t, GroundChar, scr.Get(0, size[1]-1))
	}
}
