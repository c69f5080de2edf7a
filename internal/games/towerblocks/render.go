package towerblocks

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tower-blocks/internal/config"
	"github.com/vovakirdan/tower-blocks/internal/core"
)

// Visual characters for rendering
const (
	GroundChar = '▀'
	RopeChar   = '·'
	PivotChar  = 'o'
	CloudChar  = '~'
	HeartChar  = '♥'
)

// cloudBand is the world-pixel spacing between background cloud rows.
const cloudBand = 170

// viewport maps world pixels onto terminal cells. Row 0 holds the HUD and
// the bottom row holds the ground line.
type viewport struct {
	sx, sy float64
	rows   int
}

func newViewport(dst *core.Screen, screen config.ScreenConfig) viewport {
	rows := dst.Height() - 2
	return viewport{
		sx:   float64(dst.Width()) / screen.Width,
		sy:   float64(rows) / screen.GroundY,
		rows: rows,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return 1 + int(math.Floor(y*v.sy)) }

// rect converts a world box to a cell rectangle at least one cell in size.
func (v viewport) rect(x, y, w, h float64) core.Rect {
	c0, r0 := v.col(x), v.row(y)
	c1, r1 := v.col(x+w), v.row(y+h)
	return core.NewRect(c0, r0, max(1, c1-c0), max(1, r1-r0))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.Snapshot()

	if snap.TooSmall {
		msg := "Window too small"
		dst.DrawTextCentered(dst.Height()/2, msg)
		return
	}

	vp := newViewport(dst, g.cfg.Screen)
	drawBackground(dst, vp, snap, g.cfg)
	if snap.TowerVisible {
		drawTower(dst, vp, snap, g.cfg)
	}
	if snap.ShowRope {
		drawRope(dst, vp, snap)
	}
	if snap.BlockVisible {
		drawBlock(dst, vp, snap, g.cfg)
	}
	drawHUD(dst, snap)

	switch {
	case snap.GameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Floors: %d  Score: %d  |  Press R to restart", snap.Placed, snap.Score))
	case snap.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Descending && snap.Mode == ModeClassic:
		drawCenteredMessage(dst, "OUCH!", fmt.Sprintf("Lives left: %d", snap.Lives))
	}
}

// drawBackground draws drifting clouds and the ground line. Both move with
// the camera so the stack appears to climb.
func drawBackground(dst *core.Screen, vp viewport, snap Snapshot, cfg config.TowerConfig) {
	w := dst.Width()
	shift := math.Mod(snap.CameraY, cloudBand)
	for wy := shift - cloudBand; wy < cfg.Screen.GroundY; wy += cloudBand {
		r := vp.row(wy)
		if r < 1 || r > vp.rows {
			continue
		}
		band := int(math.Floor((wy - snap.CameraY) / cloudBand))
		x := ((band*37)%w + w) % w
		dst.DrawTextColored(x, r, strings.Repeat(string(CloudChar), 4), core.ColorSky)
	}

	ground := vp.row(cfg.Screen.GroundY + snap.CameraY)
	if ground <= dst.Height()-1 {
		dst.DrawHLine(0, ground, w, GroundChar, core.ColorBrown)
	}
}

// drawTower draws the visible floors from the top surface downward.
func drawTower(dst *core.Screen, vp viewport, snap Snapshot, cfg config.TowerConfig) {
	bw, bh := cfg.Block.Width, cfg.Block.Height
	n := len(snap.Floors)
	for i, f := range snap.Floors {
		fromTop := n - 1 - i
		y := snap.TowerY + float64(fromTop)*bh
		x := f.OffsetX - bw/2 + snap.TowerX + snap.TowerLean
		color := snap.Skin.Color
		if f.Golden {
			color = core.ColorGold
		}
		dst.DrawRect(vp.rect(x, y, bw, bh), snap.Skin.Part(snap.FirstVisible+i), color)
	}
}

// drawRope draws the line from the pivot to the hook and the pivot itself.
func drawRope(dst *core.Screen, vp viewport, snap Snapshot) {
	px, py := vp.col(snap.Pivot.X), vp.row(snap.Pivot.Y)
	hx, hy := vp.col(snap.Hook.X), vp.row(snap.Hook.Y)
	dst.DrawLine(px, py, hx, hy, RopeChar, core.ColorGray)
	dst.SetColored(px, py, PivotChar, core.ColorRed)
}

// drawBlock draws the active block. A rotated block is drawn with a slanted
// glyph leaning toward the side it tips over.
func drawBlock(dst *core.Screen, vp viewport, snap Snapshot, cfg config.TowerConfig) {
	glyph := snap.Skin.Part(snap.Size)
	switch {
	case snap.BlockRotation > 0:
		glyph = '▞'
	case snap.BlockRotation < 0:
		glyph = '▚'
	}
	r := vp.rect(snap.BlockPos.X, snap.BlockPos.Y, cfg.Block.Width, cfg.Block.Height)
	dst.DrawRect(r, glyph, snap.Skin.Color)
}

// drawHUD draws score, lives and floors on the top row.
func drawHUD(dst *core.Screen, snap Snapshot) {
	lives := "∞"
	if snap.Lives >= 0 {
		lives = strings.Repeat(string(HeartChar), snap.Lives)
	}
	hud := fmt.Sprintf(" Score: %d  Floors: %d  Lives: ", snap.Score, snap.Size)
	dst.DrawText(1, 0, hud)
	dst.DrawTextColored(1+len([]rune(hud)), 0, lives, core.ColorRed)

	if snap.Flash {
		dst.DrawTextColored(max(0, (dst.Width()-8)/2), 1, "GOLDEN!", core.ColorGold)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
