// Package config provides YAML-based game configuration loading,
// validation and difficulty management for tower blocks.
package config

// TowerConfig contains all tuning for the tower blocks simulation.
// It is treated as immutable once loaded and validated.
type TowerConfig struct {
	Screen     ScreenConfig   `yaml:"screen"`
	Physics    PhysicsConfig  `yaml:"physics"`
	Block      BlockConfig    `yaml:"block"`
	Tower      StackConfig    `yaml:"tower"`
	Camera     CameraConfig   `yaml:"camera"`
	Gameplay   GameplayConfig `yaml:"gameplay"`
	Difficulty RampConfig     `yaml:"difficulty"`
}

// ScreenConfig defines the world viewport in pixels.
type ScreenConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"` // Ground line; a block bottom reaching it has landed or missed
}

// PhysicsConfig defines pendulum and falling parameters.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	RopeLength      float64 `yaml:"rope_length"`
	PivotX          float64 `yaml:"pivot_x"`
	PivotY          float64 `yaml:"pivot_y"`
	InitialAngle    float64 `yaml:"initial_angle"` // Radians from vertical at spawn
	InitialForce    float64 `yaml:"initial_force"` // Negative values pull back toward vertical
	ForceMultiplier float64 `yaml:"force_multiplier"`
	MaxForce        float64 `yaml:"max_force"` // Magnitude cap, 0 = unclamped
	FallSpeed       float64 `yaml:"fall_speed"`
	ToppleNudge     float64 `yaml:"topple_nudge"`
	ToppleSpin      float64 `yaml:"topple_spin"` // Degrees per tick
}

// BlockConfig defines block dimensions and alignment tolerances.
type BlockConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	CollisionMargin float64 `yaml:"collision_margin"`
	VerticalSlack   float64 `yaml:"vertical_slack"`
	GoldenTolerance float64 `yaml:"golden_tolerance"`
}

// StackConfig defines tower growth, wobble and collapse limits.
type StackConfig struct {
	OnscreenCap     int     `yaml:"onscreen_cap"`
	WobbleThreshold float64 `yaml:"wobble_threshold"`
	WobbleMinFloors int     `yaml:"wobble_min_floors"`
	WobbleHardCap   int     `yaml:"wobble_hard_cap"`
	WobbleSpeed     float64 `yaml:"wobble_speed"`
	WobbleAmplitude float64 `yaml:"wobble_amplitude"`
	CollapseWidth   float64 `yaml:"collapse_width"`
	CollapseStep    float64 `yaml:"collapse_step"`
	ResetCap        int     `yaml:"reset_cap"`
}

// CameraConfig defines scrolling, compaction and life-loss descent.
type CameraConfig struct {
	ScrollLine      float64 `yaml:"scroll_line"`
	ScrollSpeed     float64 `yaml:"scroll_speed"`
	ScrollMinFloors int     `yaml:"scroll_min_floors"`
	CompactFloors   int     `yaml:"compact_floors"`
	CompactHeight   float64 `yaml:"compact_height"`
	DescentSpeed    float64 `yaml:"descent_speed"`
}

// GameplayConfig defines lives and scoring.
type GameplayConfig struct {
	Lives        int `yaml:"lives"`
	Points       int `yaml:"points"`
	GoldenPoints int `yaml:"golden_points"`
}

// RampConfig defines how the pendulum drive grows after each placement.
type RampConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown names yield "".
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	default:
		return ""
	}
}
