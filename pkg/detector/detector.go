// Package detector provides facial-landmark detection for the rig.
//
// A Detector accepts one frame at a time and delivers the per-frame result
// through a registered callback. Submit runs synchronously: the callback
// for a frame completes before Submit returns, so callbacks never overlap
// as long as a single goroutine submits frames. The frame driver relies on
// that sequencing for its lock-free smoothing state.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
)

// Result is one frame's detection outcome. Faces is empty when no face is
// present; the pipeline only consumes the first entry even though backends
// may be configured for more.
type Result struct {
	Faces  []landmark.Set
	Width  int
	Height int
}

// HasFace reports whether at least one face was detected.
func (r Result) HasFace() bool {
	return len(r.Faces) > 0
}

// Callback receives every frame's result, including empty ones.
type Callback func(Result)

// Detector is the landmark detection backend.
type Detector interface {
	// OnResult registers the per-frame callback. Must be called before the
	// first Submit.
	OnResult(fn Callback)

	// Submit runs detection on one frame and invokes the callback with the
	// outcome before returning.
	Submit(frame gocv.Mat) error

	// MeshSize returns the number of landmarks per face this backend
	// produces. The rig probes it once at startup to pick a strategy.
	MeshSize() int

	// Close releases backend resources. No callback fires after Close
	// returns.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	FaceModelPath    string  // YuNet face detection ONNX
	MeshModelPath    string  // FaceMesh landmark ONNX
	ConfidenceThresh float64 // minimum face score (default 0.5)
	MeshInputSize    int     // mesh model input edge in pixels
	MaxFaces         int     // detection capacity; the pipeline reads one
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		FaceModelPath:    "models/face_detection_yunet.onnx",
		MeshModelPath:    "models/face_landmarker.onnx",
		ConfidenceThresh: 0.5,
		MeshInputSize:    192,
		MaxFaces:         4,
	}
}
