package towerblocks

import (
	"math"

	"github.com/vovakirdan/tower-blocks/internal/config"
	"github.com/vovakirdan/tower-blocks/internal/core"
)

// Alignment is the outcome of testing a falling block against the top floor.
type Alignment struct {
	Hit    bool
	Golden bool
	Offset float64 // Signed distance between the block center and the top floor center
}

// Align tests a block released at centerX against a top floor centered at
// topCenter. The horizontal window and the golden tolerance are both strict.
func Align(b config.BlockConfig, centerX, topCenter, towerY, blockY float64) Alignment {
	dx := centerX - topCenter
	a := Alignment{Offset: dx}
	if math.Abs(dx) >= b.Width-b.CollisionMargin {
		return a
	}
	if towerY-blockY > b.Height+b.VerticalSlack {
		return a
	}
	a.Hit = true
	a.Golden = math.Abs(dx) < b.GoldenTolerance
	return a
}

// Overhangs reports whether a floor centered at centerX sticks out more than
// half a block past the floor beneath it.
func Overhangs(b config.BlockConfig, centerX, belowCenter float64) bool {
	return math.Abs(centerX-belowCenter) > b.Width/2
}

// ToppleSide returns the side a block overhanging belowCenter falls toward.
func ToppleSide(centerX, belowCenter float64) core.Direction {
	if centerX < belowCenter {
		return core.DirLeft
	}
	return core.DirRight
}
