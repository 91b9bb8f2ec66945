// Package landmark defines the facial landmark data model shared by the
// detector and the rig. Landmarks follow the MediaPipe FaceMesh convention.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
package landmark

import "math"

// Mesh indices used by the rig. Only a handful of the 468 mesh points are
// ever read; the rest ride along in the set.
const (
	NoseTip        = 1
	LeftEyeOuter   = 33
	RightEyeOuter  = 263
	LeftEar        = 127
	RightEar       = 356
	LeftEyeTop     = 159
	LeftEyeBottom  = 145
	RightEyeTop    = 386
	RightEyeBottom = 374
	UpperLip       = 13
	LowerLip       = 14
	MouthLeft      = 61
	MouthRight     = 291
	LeftEyeInner   = 133
	RightEyeInner  = 362
	LeftBrow       = 105
	RightBrow      = 334
	Chin           = 152

	// Iris centers exist only in the refined mesh.
	LeftIris  = 468
	RightIris = 473

	// MeshSize is the full FaceMesh point count, without iris refinement.
	MeshSize = 468
)

// Point is a single landmark in normalized image space.
// X and Y are in [0,1] relative to the frame; Z is relative depth.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Set is one face's landmarks for a single frame, indexed by mesh number.
// A Set is produced fresh every detection cycle and never persisted.
type Set struct {
	Points []Point `json:"points"`
	Score  float64 `json:"score"`
}

// At returns the point at the given mesh index.
// Out-of-range indices return a zero point rather than panicking, since a
// degraded detector may emit a sparse set.
func (s *Set) At(i int) Point {
	if i < 0 || i >= len(s.Points) {
		return Point{}
	}
	return s.Points[i]
}

// FaceCenter returns the midpoint of the two outer eye corners.
// The fallback rig uses it as the face origin for yaw/pitch proxies.
func (s *Set) FaceCenter() Point {
	l := s.At(LeftEyeOuter)
	r := s.At(RightEyeOuter)
	return Point{
		X: (l.X + r.X) / 2,
		Y: (l.Y + r.Y) / 2,
		Z: (l.Z + r.Z) / 2,
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
