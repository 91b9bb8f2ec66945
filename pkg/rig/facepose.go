package rig

import (
	"fmt"
	"math"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
)

// FaceSolver is the built-in 3D face solver. It estimates head rotation
// from the geometry of the dense FaceMesh and derives normalized
// expression channels from landmark distance ratios.
//
// It requires the full mesh; sparse landmark sets make it return an error,
// which is why availability is probed once at startup against the
// detector's mesh size.
type FaceSolver struct{}

// ProbeSolver reports whether the built-in solver can run against a
// detector producing meshes of the given size. The check happens once at
// startup; the selected strategy is never revisited mid-session.
func ProbeSolver(meshSize int) (Solver, bool) {
	if meshSize < landmark.MeshSize {
		return nil, false
	}
	return NewFaceSolver(), true
}

// NewFaceSolver creates the geometric face solver.
func NewFaceSolver() *FaceSolver {
	return &FaceSolver{}
}

// Expression channel tuning. The low/high pairs are the raw distance
// ratios observed at the closed and fully-open extremes of each channel.
const (
	eyeRatioClosed = 0.18
	eyeRatioOpen   = 0.34

	mouthRatioClosed = 0.02
	mouthRatioOpen   = 0.09

	mouthFormNarrow = 0.32
	mouthFormWide   = 0.42

	browRatioLow  = 0.18
	browRatioHigh = 0.28
)

// Solve implements Solver.
func (f *FaceSolver) Solve(set *landmark.Set, frameW, frameH int) (*Rigging, error) {
	if set == nil || len(set.Points) < landmark.MeshSize {
		return nil, fmt.Errorf("face solver needs %d mesh points, got %d",
			landmark.MeshSize, pointCount(set))
	}

	eyeL := set.At(landmark.LeftEyeOuter)
	eyeR := set.At(landmark.RightEyeOuter)
	nose := set.At(landmark.NoseTip)
	chin := set.At(landmark.Chin)
	center := set.FaceCenter()

	faceWidth := landmark.Distance(set.At(landmark.LeftEar), set.At(landmark.RightEar))
	faceHeight := landmark.Distance(center, chin)
	if faceWidth < 1e-6 || faceHeight < 1e-6 {
		return nil, fmt.Errorf("degenerate face geometry")
	}

	// Roll from the eye line, yaw from the nose's lateral offset within
	// the ear span, pitch from the nose's drop below the eye line. All in
	// degrees.
	roll := math.Atan2(eyeR.Y-eyeL.Y, eyeR.X-eyeL.X) * 180 / math.Pi
	yaw := math.Asin(clamp((nose.X-center.X)/(faceWidth/2), -1, 1)) * 180 / math.Pi
	noseDrop := (nose.Y - center.Y) / faceHeight
	pitch := (noseDrop - neutralNoseDrop) * pitchGain

	rigging := &Rigging{
		Head: Rotation{X: yaw, Y: pitch, Z: roll},

		EyeL: remap(eyeOpenRatio(set, landmark.LeftEyeTop, landmark.LeftEyeBottom,
			landmark.LeftEyeOuter, landmark.LeftEyeInner), eyeRatioClosed, eyeRatioOpen),
		EyeR: remap(eyeOpenRatio(set, landmark.RightEyeTop, landmark.RightEyeBottom,
			landmark.RightEyeInner, landmark.RightEyeOuter), eyeRatioClosed, eyeRatioOpen),

		MouthOpen: remap(landmark.Distance(set.At(landmark.UpperLip), set.At(landmark.LowerLip))/faceHeight,
			mouthRatioClosed, mouthRatioOpen),

		MouthForm: remap(landmark.Distance(set.At(landmark.MouthLeft), set.At(landmark.MouthRight))/faceWidth,
			mouthFormNarrow, mouthFormWide)*2 - 1,
		HasMouthForm: true,

		BrowL: remap(browLift(set, landmark.LeftBrow, landmark.LeftEyeTop, faceHeight),
			browRatioLow, browRatioHigh)*2 - 1,
		BrowR: remap(browLift(set, landmark.RightBrow, landmark.RightEyeTop, faceHeight),
			browRatioLow, browRatioHigh)*2 - 1,
	}

	rigging.PupilX, rigging.PupilY = pupilOffset(set)

	return rigging, nil
}

// Close implements Solver. The geometric solver holds no resources.
func (f *FaceSolver) Close() error { return nil }

// Neutral pitch calibration: how far below the eye line the nose tip sits
// on a level head, as a fraction of face height, and the gain that maps
// deviation from it into degrees.
const (
	neutralNoseDrop = 0.45
	pitchGain       = 90.0
)

// eyeOpenRatio returns the eyelid gap relative to the eye width, the
// classic eye-aspect-ratio measure.
func eyeOpenRatio(set *landmark.Set, top, bottom, cornerA, cornerB int) float64 {
	width := landmark.Distance(set.At(cornerA), set.At(cornerB))
	if width < 1e-6 {
		return 0
	}
	return landmark.Distance(set.At(top), set.At(bottom)) / width
}

// browLift returns the brow-to-eyelid distance as a fraction of face
// height.
func browLift(set *landmark.Set, brow, eyeTop int, faceHeight float64) float64 {
	return landmark.Distance(set.At(brow), set.At(eyeTop)) / faceHeight
}

// pupilOffset derives the gaze offset from the iris centers when the
// refined mesh is present. Without iris points the gaze stays centered.
func pupilOffset(set *landmark.Set) (x, y float64) {
	if len(set.Points) <= landmark.RightIris {
		return 0, 0
	}

	lx, ly := irisInEye(set, landmark.LeftIris,
		landmark.LeftEyeOuter, landmark.LeftEyeInner,
		landmark.LeftEyeTop, landmark.LeftEyeBottom)
	rx, ry := irisInEye(set, landmark.RightIris,
		landmark.RightEyeInner, landmark.RightEyeOuter,
		landmark.RightEyeTop, landmark.RightEyeBottom)

	return clamp((lx+rx)/2, -1, 1), clamp((ly+ry)/2, -1, 1)
}

// irisInEye locates the iris center within its eye box, mapped to [-1,1]
// on each axis.
func irisInEye(set *landmark.Set, iris, left, right, top, bottom int) (x, y float64) {
	l := set.At(left)
	r := set.At(right)
	t := set.At(top)
	b := set.At(bottom)
	c := set.At(iris)

	w := r.X - l.X
	h := b.Y - t.Y
	if math.Abs(w) < 1e-6 || math.Abs(h) < 1e-6 {
		return 0, 0
	}

	return ((c.X-l.X)/w)*2 - 1, ((c.Y-t.Y)/h)*2 - 1
}

// remap linearly maps v from [lo,hi] into [0,1], saturating outside.
func remap(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return clamp((v-lo)/(hi-lo), 0, 1)
}

func pointCount(set *landmark.Set) int {
	if set == nil {
		return 0
	}
	return len(set.Points)
}
