package puppet

import "sync"

// Applier pushes bounded signal values into the live puppet's parameter
// slots. It is the only component that writes pose state.
//
// Apply never lets a failure escape: a missing parameter is an expected
// no-op, and anything the write path panics on is suppressed so the
// remaining parameters of the same frame still land.
type Applier struct {
	mu     sync.RWMutex
	target *Puppet
}

// NewApplier creates an applier for the given puppet.
func NewApplier(target *Puppet) *Applier {
	return &Applier{target: target}
}

// Retarget swaps the live puppet, used on model switch. The rig's
// smoothing state is unaffected; only the destination table changes.
func (a *Applier) Retarget(target *Puppet) {
	a.mu.Lock()
	a.target = target
	a.mu.Unlock()
}

// Target returns the puppet currently being driven.
func (a *Applier) Target() *Puppet {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.target
}

// Apply writes one named value. Unknown names and nil targets are silent
// no-ops; panics in the write path are swallowed.
func (a *Applier) Apply(name string, value float64) {
	defer func() {
		_ = recover()
	}()

	a.mu.RLock()
	target := a.target
	a.mu.RUnlock()

	if target == nil {
		return
	}
	target.Apply(name, value)
}
