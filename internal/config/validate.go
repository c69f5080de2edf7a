package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid tower config")

// Validate checks that every tunable is usable. It is meant to run once at
// startup so a bad value fails before the first tick instead of mid-game.
func (c TowerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0, "screen.width must be positive, got %v", c.Screen.Width)
	check(c.Screen.Height > 0, "screen.height must be positive, got %v", c.Screen.Height)
	check(c.Screen.GroundY > 0 && c.Screen.GroundY <= c.Screen.Height,
		"screen.ground_y must be within (0, height], got %v", c.Screen.GroundY)

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.RopeLength > 0, "physics.rope_length must be positive, got %v", c.Physics.RopeLength)
	check(c.Physics.ForceMultiplier >= 1, "physics.force_multiplier must be >= 1, got %v", c.Physics.ForceMultiplier)
	check(c.Physics.MaxForce >= 0, "physics.max_force must not be negative, got %v", c.Physics.MaxForce)
	check(c.Physics.FallSpeed > 0, "physics.fall_speed must be positive, got %v", c.Physics.FallSpeed)
	check(c.Physics.ToppleNudge >= 0, "physics.topple_nudge must not be negative, got %v", c.Physics.ToppleNudge)

	check(c.Block.Width > 0, "block.width must be positive, got %v", c.Block.Width)
	check(c.Block.Height > 0, "block.height must be positive, got %v", c.Block.Height)
	check(c.Block.CollisionMargin >= 0 && c.Block.CollisionMargin < c.Block.Width,
		"block.collision_margin must be within [0, width), got %v", c.Block.CollisionMargin)
	check(c.Block.VerticalSlack >= 0, "block.vertical_slack must not be negative, got %v", c.Block.VerticalSlack)
	check(c.Block.GoldenTolerance >= 0, "block.golden_tolerance must not be negative, got %v", c.Block.GoldenTolerance)
	check(c.Block.GoldenTolerance < c.Block.Width-c.Block.CollisionMargin,
		"block.golden_tolerance must be inside the collision window, got %v", c.Block.GoldenTolerance)

	check(c.Tower.OnscreenCap > 0, "tower.onscreen_cap must be positive, got %d", c.Tower.OnscreenCap)
	check(c.Tower.WobbleThreshold >= 0, "tower.wobble_threshold must not be negative, got %v", c.Tower.WobbleThreshold)
	check(c.Tower.WobbleMinFloors > 0, "tower.wobble_min_floors must be positive, got %d", c.Tower.WobbleMinFloors)
	check(c.Tower.WobbleHardCap >= c.Tower.WobbleMinFloors,
		"tower.wobble_hard_cap must be at least wobble_min_floors, got %d", c.Tower.WobbleHardCap)
	check(c.Tower.WobbleSpeed > 0, "tower.wobble_speed must be positive, got %v", c.Tower.WobbleSpeed)
	check(c.Tower.WobbleAmplitude > 0, "tower.wobble_amplitude must be positive, got %v", c.Tower.WobbleAmplitude)
	check(c.Tower.CollapseWidth > c.Tower.WobbleThreshold,
		"tower.collapse_width must exceed wobble_threshold, got %v", c.Tower.CollapseWidth)
	check(c.Tower.CollapseStep > 0, "tower.collapse_step must be positive, got %v", c.Tower.CollapseStep)

	check(c.Camera.ScrollSpeed > 0, "camera.scroll_speed must be positive, got %v", c.Camera.ScrollSpeed)
	check(c.Camera.ScrollLine > 0 && c.Camera.ScrollLine < c.Screen.GroundY,
		"camera.scroll_line must be above the ground line, got %v", c.Camera.ScrollLine)
	check(c.Camera.ScrollMinFloors >= 1, "camera.scroll_min_floors must be at least 1, got %d", c.Camera.ScrollMinFloors)
	// Compaction restarts the onscreen count, so a lower trigger would scroll again at once.
	check(c.Camera.ScrollMinFloors >= c.Tower.OnscreenCap,
		"camera.scroll_min_floors must be at least tower.onscreen_cap, got %d", c.Camera.ScrollMinFloors)
	check(c.Camera.CompactFloors > 0, "camera.compact_floors must be positive, got %d", c.Camera.CompactFloors)
	check(c.Camera.CompactFloors < c.Tower.ResetCap,
		"camera.compact_floors must be below tower.reset_cap, got %d", c.Camera.CompactFloors)
	check(c.Camera.CompactHeight > 0, "camera.compact_height must be positive, got %v", c.Camera.CompactHeight)
	check(c.Camera.DescentSpeed > 0, "camera.descent_speed must be positive, got %v", c.Camera.DescentSpeed)

	check(c.Gameplay.Lives > 0, "gameplay.lives must be positive, got %d", c.Gameplay.Lives)
	check(c.Gameplay.Points >= 0 && c.Gameplay.GoldenPoints >= 0, "gameplay points must not be negative")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
