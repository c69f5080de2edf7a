package towerblocks

import (
	"math"

	"github.com/vovakirdan/tower-blocks/internal/config"
	"github.com/vovakirdan/tower-blocks/internal/core"
)

// BlockState is the lifecycle phase of the active block.
type BlockState int

const (
	StateReady     BlockState = iota // Swinging on the rope
	StateDropped                     // Released, falling under gravity
	StateLanded                      // Touched the stack (or the ground on the first floor)
	StateScrolling                   // Placed; waiting for the camera to settle
	StateToppling                    // Overhung its support and is falling away
	StateMissed                      // Reached the ground beside a non-empty tower
)

// String returns a human-readable name for the state.
func (s BlockState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDropped:
		return "dropped"
	case StateLanded:
		return "landed"
	case StateScrolling:
		return "scrolling"
	case StateToppling:
		return "toppling"
	case StateMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Stack is the read-only view of the tower a falling block collides with.
type Stack interface {
	Size() int
	TopOffset() float64
	Y() float64
}

// Block is the single active piece: a pendulum until released, then a
// falling body, then either part of the tower or debris.
type Block struct {
	cfg config.TowerConfig

	pos         core.Vec2 // Top-left corner in world pixels
	velocity    float64   // Vertical fall speed
	lastCenterX float64   // Horizontal center captured at release

	angle      float64 // Radians from vertical
	swingSpeed float64
	swingAccel float64
	force      float64 // Pendulum drive, negative pulls toward vertical

	rotation  float64 // Degrees, only used while toppling
	toppleDir core.Direction
	retracted bool // Floor already removed from the tower for this topple

	state  BlockState
	golden bool
}

// NewBlock creates a block hanging at the initial swing angle.
func NewBlock(cfg config.TowerConfig, force float64) *Block {
	b := &Block{
		cfg:   cfg,
		angle: cfg.Physics.InitialAngle,
		force: force,
		state: StateReady,
	}
	b.hang()
	return b
}

// hang places the block at the end of the rope for the current angle.
func (b *Block) hang() {
	p := b.cfg.Physics
	b.pos = core.Vec2{
		X: p.PivotX + p.RopeLength*math.Sin(b.angle) - b.cfg.Block.Width/2,
		Y: p.PivotY + p.RopeLength*math.Cos(b.angle),
	}
}

// Swing advances the pendulum by one tick.
func (b *Block) Swing() {
	if b.state != StateReady {
		return
	}
	b.angle += b.swingSpeed
	b.swingAccel = math.Sin(b.angle) * b.force
	b.swingSpeed += b.swingAccel
	b.hang()
}

// Release drops the block, recording its horizontal center.
// It reports false when the block is not swinging.
func (b *Block) Release() bool {
	if b.state != StateReady {
		return false
	}
	b.state = StateDropped
	b.lastCenterX = b.pos.X + b.cfg.Block.Width/2
	b.velocity = 0
	return true
}

// Fall advances a dropped block by one tick and returns the resulting state.
func (b *Block) Fall(s Stack) BlockState {
	if b.state != StateDropped {
		return b.state
	}

	if s.Size() > 0 {
		a := Align(b.cfg.Block, b.lastCenterX, s.TopOffset(), s.Y(), b.pos.Y)
		if a.Hit {
			b.golden = a.Golden
			b.state = StateLanded
			return b.state
		}
	}

	ground := b.cfg.Screen.GroundY - b.cfg.Block.Height
	if b.pos.Y >= ground {
		b.pos.Y = ground
		if s.Size() == 0 {
			b.golden = false
			b.state = StateLanded
		} else {
			b.state = StateMissed
		}
		return b.state
	}

	b.velocity += b.cfg.Physics.Gravity
	b.pos.Y += b.velocity
	return b.state
}

// Settle snaps the block onto the top of the stack it just joined.
func (b *Block) Settle(s Stack) {
	b.pos.X = b.lastCenterX - b.cfg.Block.Width/2
	b.pos.Y = s.Y()
	b.state = StateScrolling
}

// Topple starts the fall-away animation toward dir.
func (b *Block) Topple(dir core.Direction) {
	b.state = StateToppling
	b.toppleDir = dir
	b.retracted = false
}

// MarkRetracted records that the tower no longer holds this block's floor.
func (b *Block) MarkRetracted() {
	b.retracted = true
}

// FallAway advances the topple animation: the block sinks while drifting
// and rotating toward the side it overshot.
func (b *Block) FallAway() {
	if b.state != StateToppling {
		return
	}
	p := b.cfg.Physics
	b.pos.Y += p.FallSpeed
	b.pos.X += b.toppleDir.Sign() * p.ToppleNudge
	b.rotation -= b.toppleDir.Sign() * p.ToppleSpin
}

// Respawn hangs a fresh block on the rope. The starting side alternates
// with the parity of the floor count.
func (b *Block) Respawn(floors int, force float64) {
	if floors%2 == 0 {
		b.angle = -b.cfg.Physics.InitialAngle
	} else {
		b.angle = b.cfg.Physics.InitialAngle
	}
	b.force = force
	b.swingSpeed = 0
	b.swingAccel = 0
	b.velocity = 0
	b.rotation = 0
	b.toppleDir = core.DirNone
	b.retracted = false
	b.golden = false
	b.state = StateReady
	b.hang()
}

// Hook returns the point where the rope meets the block.
func (b *Block) Hook() core.Vec2 {
	return core.Vec2{X: b.pos.X + b.cfg.Block.Width/2, Y: b.pos.Y}
}

// Pivot returns the fixed rope anchor.
func (b *Block) Pivot() core.Vec2 {
	return core.Vec2{X: b.cfg.Physics.PivotX, Y: b.cfg.Physics.PivotY}
}

func (b *Block) State() BlockState          { return b.state }
func (b *Block) Position() core.Vec2        { return b.pos }
func (b *Block) LastCenterX() float64       { return b.lastCenterX }
func (b *Block) Angle() float64             { return b.angle }
func (b *Block) SwingSpeed() float64        { return b.swingSpeed }
func (b *Block) Force() float64             { return b.force }
func (b *Block) Velocity() float64          { return b.velocity }
func (b *Block) Rotation() float64          { return b.rotation }
func (b *Block) ToppleSide() core.Direction { return b.toppleDir }
func (b *Block) Retracted() bool            { return b.retracted }
func (b *Block) IsGolden() bool             { return b.golden }
