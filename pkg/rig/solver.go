package rig

import (
	"fmt"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
	"github.com/ayase-labs/go-puppet/pkg/puppet"
)

// Rotation is a head orientation in degrees.
type Rotation struct {
	X float64 // yaw
	Y float64 // pitch
	Z float64 // roll
}

// Rigging is one frame's solver output: head rotation in degrees plus
// normalized expression channels.
type Rigging struct {
	Head Rotation

	EyeL float64 // 0..1
	EyeR float64 // 0..1

	PupilX float64 // -1..1
	PupilY float64 // -1..1

	MouthOpen float64 // 0..1

	// MouthForm is the horizontal mouth channel. Not every solver
	// produces it; HasMouthForm distinguishes "omitted" from zero.
	MouthForm    float64 // -1..1
	HasMouthForm bool

	BrowL float64
	BrowR float64
}

// Solver estimates head pose and expression from one frame's landmarks.
// Implementations must be safe to call sequentially from the detection
// callback; they are never called concurrently.
type Solver interface {
	Solve(set *landmark.Set, frameW, frameH int) (*Rigging, error)
	Close() error
}

// headRange is the pre-smoothing clamp applied to solver head degrees.
const headRange = 30.0

// bodyFollow is the fraction of smoothed head rotation fed into the body
// channels, giving the double-damped follow-through motion.
const bodyFollow = 0.5

// SolverRig is the preferred extractor strategy. It delegates rotation and
// expression to a Solver and derives body rotation as damped follow-through
// of the smoothed head angles.
type SolverRig struct {
	solver Solver
}

// NewSolverRig wraps a solver in the extractor interface.
func NewSolverRig(solver Solver) *SolverRig {
	return &SolverRig{solver: solver}
}

// Name implements Extractor.
func (r *SolverRig) Name() string { return "solver" }

// Extract implements Extractor. Head degrees are clamped to ±30 before the
// smoother sees them and are not re-clamped afterwards; EMA transients are
// allowed through.
func (r *SolverRig) Extract(set *landmark.Set, frameW, frameH int) ([]Signal, error) {
	rigging, err := r.solver.Solve(set, frameW, frameH)
	if err != nil {
		return nil, fmt.Errorf("solve face: %w", err)
	}

	sigs := []Signal{
		unboundedSignal(puppet.ParamAngleX, clamp(rigging.Head.X, -headRange, headRange)),
		unboundedSignal(puppet.ParamAngleY, clamp(rigging.Head.Y, -headRange, headRange)),
		unboundedSignal(puppet.ParamAngleZ, clamp(rigging.Head.Z, -headRange, headRange)),
		{Param: puppet.ParamEyeLOpen, Value: rigging.EyeL, Min: 0, Max: 1},
		{Param: puppet.ParamEyeROpen, Value: rigging.EyeR, Min: 0, Max: 1},
		{Param: puppet.ParamEyeBallX, Value: rigging.PupilX, Min: -1, Max: 1},
		{Param: puppet.ParamEyeBallY, Value: rigging.PupilY, Min: -1, Max: 1},
		{Param: puppet.ParamMouthOpenY, Value: rigging.MouthOpen, Min: 0, Max: 1},
		{Param: puppet.ParamBrowLY, Value: rigging.BrowL, Min: -1, Max: 1},
		{Param: puppet.ParamBrowRY, Value: rigging.BrowR, Min: -1, Max: 1},
	}

	if rigging.HasMouthForm {
		sigs = append(sigs, Signal{Param: puppet.ParamMouthForm, Value: rigging.MouthForm, Min: -1, Max: 1})
	}

	return sigs, nil
}

// Secondary implements Extractor. Body rotation gets its own EMA state fed
// from the already-smoothed head angles, so it lags the head twice over.
func (r *SolverRig) Secondary(smoothed map[string]float64) []Signal {
	return []Signal{
		{Param: puppet.ParamBodyAngleX, Value: smoothed[puppet.ParamAngleX] * bodyFollow, Min: -30, Max: 30},
		{Param: puppet.ParamBodyAngleY, Value: smoothed[puppet.ParamAngleY] * bodyFollow, Min: -30, Max: 30},
		{Param: puppet.ParamBodyAngleZ, Value: smoothed[puppet.ParamAngleZ] * bodyFollow, Min: -30, Max: 30},
	}
}

// Close releases the underlying solver.
func (r *SolverRig) Close() error {
	return r.solver.Close()
}
