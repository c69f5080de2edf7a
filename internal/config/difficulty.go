package config

import "math"

// ForceRamp computes the pendulum drive after each successful placement.
// The drive grows multiplicatively so every swing is faster than the last.
type ForceRamp struct {
	enabled    bool
	multiplier float64
	maxForce   float64
}

// NewForceRamp creates a ramp from the physics and difficulty config.
func NewForceRamp(physics PhysicsConfig, ramp RampConfig) *ForceRamp {
	return &ForceRamp{
		enabled:    ramp.Enabled,
		multiplier: physics.ForceMultiplier,
		maxForce:   physics.MaxForce,
	}
}

// IsEnabled returns whether the drive progresses at all.
func (r *ForceRamp) IsEnabled() bool {
	return r.enabled
}

// Next returns the drive to use for the following swing.
// The sign is preserved; the magnitude is capped by max_force when it is set.
func (r *ForceRamp) Next(force float64) float64 {
	if !r.enabled {
		return force
	}
	return r.Clamp(force * r.multiplier)
}

// Clamp caps the magnitude of force at max_force (0 disables the cap).
func (r *ForceRamp) Clamp(force float64) float64 {
	if r.maxForce <= 0 || math.Abs(force) <= r.maxForce {
		return force
	}
	return math.Copysign(r.maxForce, force)
}
