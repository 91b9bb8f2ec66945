package puppet

import "sync"

// Param is a live parameter slot in the loaded puppet's pose state.
type Param struct {
	spec  ParamSpec
	value float64
}

// Spec returns the slot's declaration.
func (p *Param) Spec() ParamSpec {
	return p.spec
}

// Puppet is the live pose state of one loaded model: a table of named
// parameter slots initialized to their declared defaults. The applier is
// the only writer; the web layer reads snapshots for broadcast.
type Puppet struct {
	model *Model

	mu     sync.RWMutex
	params map[string]*Param
}

// Load builds the parameter table for a model.
func Load(model *Model) *Puppet {
	params := make(map[string]*Param, len(model.Parameters))
	for _, spec := range model.Parameters {
		params[spec.ID] = &Param{spec: spec, value: spec.Default}
	}
	return &Puppet{model: model, params: params}
}

// Model returns the descriptor this puppet was loaded from.
func (p *Puppet) Model() *Model {
	return p.model
}

// Lookup returns the parameter slot for a name, if the model declares it.
// Different models expose different parameter subsets; a miss is expected
// and not an error.
func (p *Puppet) Lookup(name string) (*Param, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	param, ok := p.params[name]
	return param, ok
}

// Apply writes a value into the named slot if the model declares it and
// reports whether the write happened. Unknown names are a silent no-op.
// The renderer applies its own domain on top, so values are stored as-is.
func (p *Puppet) Apply(name string, v float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	param, ok := p.params[name]
	if !ok {
		return false
	}
	param.value = v
	return true
}

// Value returns the current value of a declared parameter.
func (p *Puppet) Value(name string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	param, ok := p.params[name]
	if !ok {
		return 0, false
	}
	return param.value, true
}

// Snapshot copies the current pose, for streaming to renderer clients.
func (p *Puppet) Snapshot() map[string]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]float64, len(p.params))
	for id, param := range p.params {
		out[id] = param.value
	}
	return out
}
