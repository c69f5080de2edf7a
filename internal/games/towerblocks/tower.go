package towerblocks

import (
	"math"

	"github.com/vovakirdan/tower-blocks/internal/config"
	"github.com/vovakirdan/tower-blocks/internal/core"
)

// Floor is one placed block in the stack.
type Floor struct {
	OffsetX float64 // Horizontal center of the floor in world pixels
	Golden  bool    // Placed within the golden tolerance
}

// Tower owns the stack: placed floors, lean, wobble, scroll and collapse.
// Size() always equals the number of recorded floors; the renderer decides
// how many of them are actually drawn through VisibleFloors.
type Tower struct {
	cfg config.TowerConfig

	floors      []Floor
	baseOffsetX float64

	x      float64 // Collapse slide
	y      float64 // Screen-space y of the top surface
	lean   float64 // Wobble displacement
	speed  float64 // Wobble speed, sign is the current direction
	height float64 // Stack height used for scroll decisions

	onscreen  int // Trailing floors rendered
	wobbling  bool
	scrolling bool
	visible   bool
}

// NewTower creates an empty tower standing on the ground line.
func NewTower(cfg config.TowerConfig) *Tower {
	return &Tower{
		cfg:     cfg,
		floors:  make([]Floor, 0, 16),
		y:       cfg.Screen.GroundY,
		speed:   cfg.Tower.WobbleSpeed,
		visible: true,
	}
}

// Build appends a floor centered at offsetX.
// Height is recomputed from the floor count until the on-screen cap is
// reached, after which it grows incrementally so the stack can keep rising
// inside a bounded render window.
func (t *Tower) Build(offsetX float64, golden bool) {
	t.floors = append(t.floors, Floor{OffsetX: offsetX, Golden: golden})
	if len(t.floors) == 1 {
		t.baseOffsetX = offsetX
	}
	t.onscreen++

	fh := t.cfg.Block.Height
	if size := len(t.floors); size <= t.cfg.Tower.OnscreenCap {
		t.height = float64(size) * fh
		t.y = t.cfg.Screen.GroundY - t.height
	} else {
		t.height += fh
		t.y -= fh
	}
}

// Unbuild removes the most recently built floor and undoes its geometry.
// Calling it on an empty tower is a programming error.
func (t *Tower) Unbuild() {
	if len(t.floors) == 0 {
		panic("towerblocks: unbuild on an empty tower")
	}
	prevSize := len(t.floors)
	t.floors = t.floors[:prevSize-1]
	if t.onscreen > 0 {
		t.onscreen--
	}

	fh := t.cfg.Block.Height
	if prevSize <= t.cfg.Tower.OnscreenCap {
		t.height = float64(len(t.floors)) * fh
		t.y = t.cfg.Screen.GroundY - t.height
	} else {
		t.height -= fh
		t.y += fh
	}
}

// TotalWidth returns the signed span from the base floor to the top floor
// plus one block width. The sign is the lean direction.
func (t *Tower) TotalWidth() float64 {
	w := t.cfg.Block.Width
	if len(t.floors) == 0 {
		return w
	}
	top := t.floors[len(t.floors)-1].OffsetX
	switch {
	case top > t.baseOffsetX:
		return top - t.baseOffsetX + w
	case top < t.baseOffsetX:
		return -(t.baseOffsetX - top + w)
	}
	return w
}

// Wobble advances the lateral oscillation. Once activated it never stops;
// lean is a triangular wave clamped to [-amplitude, amplitude].
func (t *Tower) Wobble() {
	tc := t.cfg.Tower
	size := len(t.floors)
	if (math.Abs(t.TotalWidth()) > tc.WobbleThreshold && size >= tc.WobbleMinFloors) || size >= tc.WobbleHardCap {
		t.wobbling = true
	}
	if !t.wobbling {
		return
	}

	t.lean += t.speed
	amp := tc.WobbleAmplitude
	if t.lean >= amp {
		t.lean = amp
		t.speed = -math.Abs(tc.WobbleSpeed)
	} else if t.lean <= -amp {
		t.lean = -amp
		t.speed = math.Abs(tc.WobbleSpeed)
	}
}

// ShouldScroll reports whether the stack is tall enough to move the camera.
func (t *Tower) ShouldScroll() bool {
	floors := t.cfg.Camera.ScrollMinFloors
	return t.height >= float64(floors)*t.cfg.Block.Height && len(t.floors) >= floors
}

// Scroll nudges the top surface down while it is above the camera line.
// Once the line is crossed the height is compacted and the visible-floor
// counter drops back to a small constant.
func (t *Tower) Scroll() {
	cam := t.cfg.Camera
	if t.y <= cam.ScrollLine {
		t.y += cam.ScrollSpeed
		t.scrolling = true
		return
	}
	t.height = cam.CompactHeight
	t.scrolling = false
	t.onscreen = cam.CompactFloors
}

// Reset compacts the visible window when the player keeps building past the
// point where scrolling settles.
func (t *Tower) Reset() {
	if t.onscreen >= t.cfg.Tower.ResetCap {
		t.onscreen = t.cfg.Camera.CompactFloors
		t.y = t.cfg.Camera.ScrollLine
	}
}

// Collapse slides the stack one step down and sideways.
func (t *Tower) Collapse(dir core.Direction) {
	step := t.cfg.Tower.CollapseStep
	t.y += step
	t.x += dir.Sign() * step
}

// Hide removes the tower from display after a life is lost.
func (t *Tower) Hide() {
	t.visible = false
}

// Size returns the number of standing floors.
func (t *Tower) Size() int {
	return len(t.floors)
}

// Top returns the most recently built floor.
func (t *Tower) Top() (Floor, bool) {
	return t.FromTop(0)
}

// FromTop returns the floor n positions below the top (0 is the top).
func (t *Tower) FromTop(n int) (Floor, bool) {
	i := len(t.floors) - 1 - n
	if n < 0 || i < 0 {
		return Floor{}, false
	}
	return t.floors[i], true
}

// TopOffset returns the center of the top floor, or the base offset when empty.
func (t *Tower) TopOffset() float64 {
	if f, ok := t.Top(); ok {
		return f.OffsetX
	}
	return t.baseOffsetX
}

// Floors returns a copy of all floors, base first.
func (t *Tower) Floors() []Floor {
	out := make([]Floor, len(t.floors))
	copy(out, t.floors)
	return out
}

// VisibleFloors returns the trailing floors the renderer should draw,
// base-most first, and the stack index of the first one.
func (t *Tower) VisibleFloors() ([]Floor, int) {
	n := min(t.onscreen, len(t.floors))
	start := len(t.floors) - n
	out := make([]Floor, n)
	copy(out, t.floors[start:])
	return out, start
}

// IsGolden reports whether the top floor was a golden hit.
func (t *Tower) IsGolden() bool {
	f, ok := t.Top()
	return ok && f.Golden
}

func (t *Tower) X() float64          { return t.x }
func (t *Tower) Y() float64          { return t.y }
func (t *Tower) Lean() float64       { return t.lean }
func (t *Tower) Height() float64     { return t.height }
func (t *Tower) Onscreen() int       { return t.onscreen }
func (t *Tower) BaseOffset() float64 { return t.baseOffsetX }
func (t *Tower) IsWobbling() bool    { return t.wobbling }
func (t *Tower) IsScrolling() bool   { return t.scrolling }
func (t *Tower) Visible() bool       { return t.visible }
