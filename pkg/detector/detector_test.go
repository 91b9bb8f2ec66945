package detector

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
)

func TestExpandRect(t *testing.T) {
	tests := []struct {
		name   string
		in     image.Rectangle
		margin float64
		want   image.Rectangle
	}{
		{
			name:   "interior box grows evenly",
			in:     image.Rect(400, 200, 800, 600),
			margin: 0.25,
			want:   image.Rect(300, 100, 900, 700),
		},
		{
			name:   "clamped at frame edges",
			in:     image.Rect(0, 0, 400, 400),
			margin: 0.25,
			want:   image.Rect(0, 0, 500, 500),
		},
		{
			name:   "clamped at far corner",
			in:     image.Rect(1000, 500, 1280, 720),
			margin: 0.5,
			want:   image.Rect(860, 390, 1280, 720),
		},
		{
			name:   "zero margin is identity",
			in:     image.Rect(100, 100, 200, 200),
			margin: 0,
			want:   image.Rect(100, 100, 200, 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandRect(tt.in, tt.margin, 1280, 720); got != tt.want {
				t.Errorf("expandRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMock_ScriptLoopsOnLastResult(t *testing.T) {
	withFace := Result{
		Faces:  []landmark.Set{{Points: make([]landmark.Point, landmark.MeshSize)}},
		Width:  1280,
		Height: 720,
	}
	empty := Result{Width: 1280, Height: 720}

	m := NewMock(withFace, empty)

	var seen []bool
	m.OnResult(func(r Result) { seen = append(seen, r.HasFace()) })

	for i := 0; i < 4; i++ {
		if err := m.Submit(gocv.Mat{}); err != nil {
			t.Fatal(err)
		}
	}

	want := []bool{true, false, false, false}
	if len(seen) != len(want) {
		t.Fatalf("callbacks = %d, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("frame %d: HasFace = %v, want %v", i, seen[i], want[i])
		}
	}
	if m.Submits != 4 {
		t.Errorf("submits = %d, want 4", m.Submits)
	}
}

func TestResult_HasFace(t *testing.T) {
	if (Result{}).HasFace() {
		t.Error("empty result reports a face")
	}
	r := Result{Faces: []landmark.Set{{}}}
	if !r.HasFace() {
		t.Error("result with a face reports none")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.FaceModelPath == "" || cfg.MeshModelPath == "" {
		t.Errorf("missing model paths: %+v", cfg)
	}
	if cfg.MeshInputSize <= 0 || cfg.ConfidenceThresh <= 0 {
		t.Errorf("missing defaults: %+v", cfg)
	}
}
