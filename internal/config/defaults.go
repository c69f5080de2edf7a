package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the default tower blocks configuration.
// Values match the embedded defaults/tower.yaml.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Screen: ScreenConfig{
			Width:   800,
			Height:  600,
			GroundY: 600,
		},
		Physics: PhysicsConfig{
			Gravity:         0.5,
			RopeLength:      120,
			PivotX:          400,
			PivotY:          20,
			InitialAngle:    math.Pi / 4,
			InitialForce:    -0.001,
			ForceMultiplier: 1.02,
			MaxForce:        0.02,
			FallSpeed:       5,
			ToppleNudge:     2,
			ToppleSpin:      1,
		},
		Block: BlockConfig{
			Width:           64,
			Height:          64,
			CollisionMargin: 4,
			VerticalSlack:   6,
			GoldenTolerance: 5,
		},
		Tower: StackConfig{
			OnscreenCap:     5,
			WobbleThreshold: 100,
			WobbleMinFloors: 5,
			WobbleHardCap:   20,
			WobbleSpeed:     0.4,
			WobbleAmplitude: 20,
			CollapseWidth:   140,
			CollapseStep:    5,
			ResetCap:        7,
		},
		Camera: CameraConfig{
			ScrollLine:      440,
			ScrollSpeed:     5,
			ScrollMinFloors: 5,
			CompactFloors:   3,
			CompactHeight:   160,
			DescentSpeed:    10,
		},
		Gameplay: GameplayConfig{
			Lives:        3,
			Points:       1,
			GoldenPoints: 2,
		},
		Difficulty: RampConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTowerYAML
}
