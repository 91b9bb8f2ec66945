package rig

// DefaultAlpha is the smoothing factor shared by every channel.
// Lower values give smoother but laggier motion.
const DefaultAlpha = 0.3

// Smoother holds one exponential-moving-average accumulator per signal
// channel. All channels share a single alpha; accumulators start at zero
// and live for the whole session.
//
// The smoother is written by exactly one caller per frame (the frame
// driver, inside the detection callback), so it carries no lock. The
// detector's sequencing contract guarantees callbacks never overlap.
type Smoother struct {
	alpha float64
	state map[string]float64
}

// NewSmoother creates a smoother with the given factor.
// Alpha outside (0,1] falls back to DefaultAlpha.
func NewSmoother(alpha float64) *Smoother {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &Smoother{
		alpha: alpha,
		state: make(map[string]float64),
	}
}

// Fold advances the channel's accumulator toward raw and returns the new
// smoothed value: s ← s + (raw − s) × α.
func (s *Smoother) Fold(name string, raw float64) float64 {
	cur := s.state[name]
	next := cur + (raw-cur)*s.alpha
	s.state[name] = next
	return next
}

// Value returns the channel's current accumulator without advancing it.
// Unknown channels report zero, the initial state.
func (s *Smoother) Value(name string) float64 {
	return s.state[name]
}

// Channels returns the number of channels that have been folded at least
// once.
func (s *Smoother) Channels() int {
	return len(s.state)
}

// Snapshot returns a copy of all accumulators, for tests and diagnostics.
func (s *Smoother) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}
