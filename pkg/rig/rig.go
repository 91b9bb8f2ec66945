// Package rig maps facial landmarks onto named avatar parameters.
// It implements the per-frame extraction pipeline: a selectable Extractor
// strategy turns one frame's landmarks into raw pose signals, a Smoother
// low-passes each signal independently, and the clamped result is handed
// to the puppet's parameter table.
//
// Two extractor strategies exist:
//   - SolverRig delegates to a 3D face solver for proper head-pose
//     estimation and normalized expression channels.
//   - FallbackRig derives approximate signals directly from landmark
//     coordinate deltas when no solver is available.
//
// The strategy is chosen once at startup, never per frame.
package rig

import (
	"math"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
)

// Signal is one named scalar produced by an extractor for a single frame.
// Value is raw (pre-smoothing); Min/Max is the domain the smoothed value
// is clamped into immediately before being applied.
type Signal struct {
	Param string
	Value float64
	Min   float64
	Max   float64
}

// Clamp returns the signal's domain applied to v.
// Clamping saturates, it never rejects.
func (s Signal) Clamp(v float64) float64 {
	return clamp(v, s.Min, s.Max)
}

// Extractor converts one frame's landmarks into pose signals.
type Extractor interface {
	// Name returns the strategy identifier (for logging and /api/status).
	Name() string

	// Extract produces this frame's primary signals from the landmark set
	// and the source frame dimensions.
	Extract(set *landmark.Set, frameW, frameH int) ([]Signal, error)

	// Secondary produces follow-through signals derived from this frame's
	// smoothed primary values (body rotation on the solver rig).
	// Returns nil when the strategy has no secondary channels.
	Secondary(smoothed map[string]float64) []Signal
}

// Unbounded marks a signal domain that should not be re-clamped after
// smoothing. The solver rig clamps head degrees before the smoother sees
// them and lets EMA transients pass through.
var Unbounded = math.Inf(1)

func unboundedSignal(param string, v float64) Signal {
	return Signal{Param: param, Value: v, Min: -Unbounded, Max: Unbounded}
}

// clamp limits a value to a range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
