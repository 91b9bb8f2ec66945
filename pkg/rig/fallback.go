package rig

import (
	"math"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
	"github.com/ayase-labs/go-puppet/pkg/puppet"
)

// FallbackConfig holds the empirical scale factors that map normalized
// landmark deltas into degree/scalar ranges. The defaults were tuned by
// eye, not derived; treat them as starting points.
type FallbackConfig struct {
	PositionScale float64 // face-center offset → body rotation X
	RotationScale float64 // nose/ear deltas → head rotation degrees
	GazeScale     float64 // nose deltas → eye ball offset
	MouthScale    float64 // lip gap → mouth openness
	EyeScale      float64 // eyelid gap → eye openness

	// Head rotation clamp ranges, in degrees.
	YawPitchRange float64
	RollRange     float64
}

// DefaultFallbackConfig returns the reference tuning.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		PositionScale: 100,
		RotationScale: 200,
		GazeScale:     150,
		MouthScale:    40,
		EyeScale:      30,
		YawPitchRange: 70,
		RollRange:     50,
	}
}

// FallbackRig derives approximate pose signals directly from landmark
// coordinate deltas. It needs only a handful of mesh points and works with
// any detector, at the cost of real 3D head-pose estimation. No mouth-form
// or brow channels are produced on this path.
type FallbackRig struct {
	cfg FallbackConfig
}

// NewFallbackRig creates the fallback extractor.
func NewFallbackRig(cfg FallbackConfig) *FallbackRig {
	return &FallbackRig{cfg: cfg}
}

// Name implements Extractor.
func (r *FallbackRig) Name() string { return "fallback" }

// Extract implements Extractor. All formulas operate on normalized
// image-space coordinates; frame dimensions are not needed.
func (r *FallbackRig) Extract(set *landmark.Set, frameW, frameH int) ([]Signal, error) {
	center := set.FaceCenter()
	nose := set.At(landmark.NoseTip)
	leftEar := set.At(landmark.LeftEar)
	rightEar := set.At(landmark.RightEar)

	yaw := (nose.X - center.X) * r.cfg.RotationScale
	pitch := (nose.Y - center.Y) * r.cfg.RotationScale
	roll := (leftEar.Y - rightEar.Y) * r.cfg.RotationScale

	gazeX := (nose.X - center.X) * r.cfg.GazeScale
	gazeY := (nose.Y - center.Y) * r.cfg.GazeScale

	mouth := math.Abs(set.At(landmark.UpperLip).Y-set.At(landmark.LowerLip).Y) * r.cfg.MouthScale
	eyeL := math.Abs(set.At(landmark.LeftEyeTop).Y-set.At(landmark.LeftEyeBottom).Y) * r.cfg.EyeScale
	eyeR := math.Abs(set.At(landmark.RightEyeTop).Y-set.At(landmark.RightEyeBottom).Y) * r.cfg.EyeScale

	// Face-center offset from screen center drives the body X channel only.
	bodyX := (center.X - 0.5) * r.cfg.PositionScale

	return []Signal{
		{Param: puppet.ParamAngleX, Value: yaw, Min: -r.cfg.YawPitchRange, Max: r.cfg.YawPitchRange},
		{Param: puppet.ParamAngleY, Value: pitch, Min: -r.cfg.YawPitchRange, Max: r.cfg.YawPitchRange},
		{Param: puppet.ParamAngleZ, Value: roll, Min: -r.cfg.RollRange, Max: r.cfg.RollRange},
		{Param: puppet.ParamBodyAngleX, Value: bodyX, Min: -30, Max: 30},
		{Param: puppet.ParamEyeBallX, Value: gazeX, Min: -1, Max: 1},
		{Param: puppet.ParamEyeBallY, Value: gazeY, Min: -1, Max: 1},
		{Param: puppet.ParamMouthOpenY, Value: mouth, Min: 0, Max: 1},
		{Param: puppet.ParamEyeLOpen, Value: eyeL, Min: 0, Max: 1},
		{Param: puppet.ParamEyeROpen, Value: eyeR, Min: 0, Max: 1},
	}, nil
}

// Secondary implements Extractor. The fallback rig has no follow-through
// channels; its body X proxy is a primary signal.
func (r *FallbackRig) Secondary(smoothed map[string]float64) []Signal {
	return nil
}
