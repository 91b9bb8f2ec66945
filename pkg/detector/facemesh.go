package detector

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayase-labs/go-puppet/internal/log"
	"github.com/ayase-labs/go-puppet/pkg/landmark"
)

// faceBoxMargin expands the detected face box before the mesh pass, so
// ears and chin stay inside the crop.
const faceBoxMargin = 0.25

// FaceMeshDetector runs a two-stage pipeline: YuNet finds the face box,
// then a FaceMesh network regresses the dense landmark set inside it.
type FaceMeshDetector struct {
	face gocv.FaceDetectorYN
	mesh gocv.Net
	cfg  Config
	cb   Callback

	mu sync.Mutex // protects inference and Close
}

// NewFaceMesh creates the detector. Both model files must exist; a missing
// file is an initialization failure, fatal to the session.
func NewFaceMesh(cfg Config) (*FaceMeshDetector, error) {
	for _, path := range []string{cfg.FaceModelPath, cfg.MeshModelPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("model file not found: %s", path)
		}
	}

	face := gocv.NewFaceDetectorYNWithParams(
		cfg.FaceModelPath,
		"",                          // no config file needed for ONNX
		image.Pt(320, 320),          // initial input size, updated per frame
		float32(cfg.ConfidenceThresh),
		0.3,                         // NMS threshold
		5000,                        // top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	mesh := gocv.ReadNet(cfg.MeshModelPath, "")
	if mesh.Empty() {
		face.Close()
		return nil, fmt.Errorf("failed to load mesh model: %s", cfg.MeshModelPath)
	}

	return &FaceMeshDetector{face: face, mesh: mesh, cfg: cfg}, nil
}

// OnResult implements Detector.
func (d *FaceMeshDetector) OnResult(fn Callback) {
	d.cb = fn
}

// MeshSize implements Detector.
func (d *FaceMeshDetector) MeshSize() int {
	return landmark.MeshSize
}

// Submit implements Detector. The callback fires exactly once per call,
// with an empty face list when nothing was detected.
func (d *FaceMeshDetector) Submit(frame gocv.Mat) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame.Empty() {
		return fmt.Errorf("empty frame")
	}

	result := Result{Width: frame.Cols(), Height: frame.Rows()}

	box, found := d.detectFaceBox(frame)
	if found {
		set, err := d.meshLandmarks(frame, box)
		if err != nil {
			// A failed mesh pass counts as a face-absent frame; the
			// session continues.
			log.Debug("mesh pass failed", "err", err)
		} else {
			result.Faces = append(result.Faces, set)
		}
	}

	if d.cb != nil {
		d.cb(result)
	}
	return nil
}

// detectFaceBox runs YuNet and returns the best face's pixel rectangle.
func (d *FaceMeshDetector) detectFaceBox(frame gocv.Mat) (image.Rectangle, bool) {
	d.face.SetInputSize(image.Pt(frame.Cols(), frame.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()
	d.face.Detect(frame, &faces)

	// YuNet output format (15 columns):
	// 0-3: x, y, w, h (bounding box in pixels)
	// 4-13: 5 coarse landmarks (x,y pairs)
	// 14: face score
	best := image.Rectangle{}
	bestScore := 0.0
	for r := 0; r < faces.Rows(); r++ {
		score := float64(faces.GetFloatAt(r, 14))
		if score < d.cfg.ConfidenceThresh || score <= bestScore {
			continue
		}
		x := int(faces.GetFloatAt(r, 0))
		y := int(faces.GetFloatAt(r, 1))
		w := int(faces.GetFloatAt(r, 2))
		h := int(faces.GetFloatAt(r, 3))
		best = image.Rect(x, y, x+w, y+h)
		bestScore = score
	}

	if bestScore == 0 {
		return image.Rectangle{}, false
	}

	return expandRect(best, faceBoxMargin, frame.Cols(), frame.Rows()), true
}

// meshLandmarks crops the face box, runs the mesh network, and maps the
// landmark coordinates back into normalized full-frame space.
func (d *FaceMeshDetector) meshLandmarks(frame gocv.Mat, box image.Rectangle) (landmark.Set, error) {
	crop := frame.Region(box)
	defer crop.Close()

	edge := d.cfg.MeshInputSize
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(crop, &resized, image.Pt(edge, edge), 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(resized, 1.0/255.0, image.Pt(edge, edge),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mesh.SetInput(blob, "")
	out := d.mesh.Forward("")
	defer out.Close()

	data, err := out.DataPtrFloat32()
	if err != nil {
		return landmark.Set{}, fmt.Errorf("read mesh output: %w", err)
	}
	if len(data) < landmark.MeshSize*3 {
		return landmark.Set{}, fmt.Errorf("short mesh output: %d floats", len(data))
	}

	frameW := float64(frame.Cols())
	frameH := float64(frame.Rows())
	boxW := float64(box.Dx())
	boxH := float64(box.Dy())

	n := len(data) / 3
	points := make([]landmark.Point, n)
	for i := 0; i < n; i++ {
		// Mesh output is in crop-local pixel coordinates.
		cx := float64(data[i*3]) / float64(edge)
		cy := float64(data[i*3+1]) / float64(edge)
		cz := float64(data[i*3+2]) / float64(edge)
		points[i] = landmark.Point{
			X: (float64(box.Min.X) + cx*boxW) / frameW,
			Y: (float64(box.Min.Y) + cy*boxH) / frameH,
			Z: cz,
		}
	}

	return landmark.Set{Points: points, Score: 1}, nil
}

// Close implements Detector.
func (d *FaceMeshDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.face.Close()
	return d.mesh.Close()
}

// expandRect grows r by margin on every side, clamped to the frame.
func expandRect(r image.Rectangle, margin float64, maxW, maxH int) image.Rectangle {
	dx := int(float64(r.Dx()) * margin)
	dy := int(float64(r.Dy()) * margin)
	out := image.Rect(r.Min.X-dx, r.Min.Y-dy, r.Max.X+dx, r.Max.Y+dy)
	return out.Intersect(image.Rect(0, 0, maxW, maxH))
}
