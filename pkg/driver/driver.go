// Package driver orchestrates the per-frame pipeline: one detection
// result in, extract → smooth → clamp → apply out.
//
// The driver runs entirely inside the detector's result callback,
// synchronously and non-reentrant. Its smoothing state carries no lock;
// correctness depends on the detector never delivering two callbacks
// concurrently, which Detector.Submit guarantees for a single submitting
// goroutine.
package driver

import (
	"github.com/ayase-labs/go-puppet/internal/log"
	"github.com/ayase-labs/go-puppet/pkg/detector"
	"github.com/ayase-labs/go-puppet/pkg/puppet"
	"github.com/ayase-labs/go-puppet/pkg/rig"
)

// State is the driver's face-presence state.
type State int

const (
	// Idle means no face is currently tracked; the previous pose is
	// frozen.
	Idle State = iota

	// Tracking means a face was present on the last processed frame.
	Tracking
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Tracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Driver receives detection results and drives the puppet's parameters.
type Driver struct {
	extractor rig.Extractor
	smoother  *rig.Smoother
	applier   *puppet.Applier

	state  State
	misses int

	frames uint64
	errors uint64

	// OnFrame, when set, is called after every frame that mutated the
	// pose, with the puppet's new snapshot. Used to stream parameters to
	// renderer clients.
	OnFrame func(pose map[string]float64)
}

// New creates a frame driver. The extractor strategy is fixed for the
// driver's lifetime; the smoother starts at zero and is never reset except
// by constructing a new driver.
func New(extractor rig.Extractor, smoother *rig.Smoother, applier *puppet.Applier) *Driver {
	return &Driver{
		extractor: extractor,
		smoother:  smoother,
		applier:   applier,
	}
}

// State returns the current face-presence state.
func (d *Driver) State() State {
	return d.state
}

// Frames returns how many frames have mutated the pose.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Errors returns how many frames were skipped on extraction failure.
func (d *Driver) Errors() uint64 {
	return d.errors
}

// HandleResult processes one detection result. This is the entire hot
// path.
//
// A result without a face freezes the pose: no accumulator moves, no
// parameter is written, and the avatar holds its last pose until a face
// returns. There is no hysteresis in either direction.
func (d *Driver) HandleResult(res detector.Result) {
	if !res.HasFace() {
		if d.state == Tracking {
			d.state = Idle
			log.Debug("face lost, pose frozen")
		}
		d.misses++
		if d.misses == 5 {
			log.Info("no face for 5 consecutive frames")
		}
		return
	}

	if d.state == Idle {
		d.state = Tracking
		log.Debug("face acquired", "misses", d.misses)
	}
	d.misses = 0

	// Only the first face drives the puppet.
	set := &res.Faces[0]

	sigs, err := d.extractor.Extract(set, res.Width, res.Height)
	if err != nil {
		// Extraction failures skip the frame, never the session.
		d.errors++
		log.Warn("extract failed, frame skipped", "err", err)
		return
	}

	smoothed := make(map[string]float64, len(sigs))
	for _, sig := range sigs {
		v := d.smoother.Fold(sig.Param, sig.Value)
		smoothed[sig.Param] = v
		d.applier.Apply(sig.Param, sig.Clamp(v))
	}

	// Secondary channels fold the smoothed primaries into their own
	// accumulators: double-damped follow-through.
	for _, sig := range d.extractor.Secondary(smoothed) {
		v := d.smoother.Fold(sig.Param, sig.Value)
		d.applier.Apply(sig.Param, sig.Clamp(v))
	}

	d.frames++

	if d.OnFrame != nil {
		if target := d.applier.Target(); target != nil {
			d.OnFrame(target.Snapshot())
		}
	}
}
