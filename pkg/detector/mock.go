package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayase-labs/go-puppet/pkg/landmark"
)

// Mock is a scripted detector for tests. Each Submit delivers the next
// queued result, looping on the last one when the script runs out.
type Mock struct {
	Script  []Result
	Mesh    int
	cb      Callback
	cursor  int
	Submits int
	Closed  bool
}

// NewMock creates a mock detector with the given script.
func NewMock(script ...Result) *Mock {
	return &Mock{Script: script, Mesh: landmark.MeshSize}
}

// OnResult implements Detector.
func (m *Mock) OnResult(fn Callback) {
	m.cb = fn
}

// Submit implements Detector.
func (m *Mock) Submit(frame gocv.Mat) error {
	m.Submits++
	if m.cb == nil || len(m.Script) == 0 {
		return nil
	}
	r := m.Script[m.cursor]
	if m.cursor < len(m.Script)-1 {
		m.cursor++
	}
	m.cb(r)
	return nil
}

// Emit bypasses Submit and pushes a result straight to the callback, for
// driver tests that do not want a gocv dependency in the loop.
func (m *Mock) Emit(r Result) {
	if m.cb != nil {
		m.cb(r)
	}
}

// MeshSize implements Detector.
func (m *Mock) MeshSize() int {
	return m.Mesh
}

// Close implements Detector.
func (m *Mock) Close() error {
	m.Closed = true
	return nil
}
