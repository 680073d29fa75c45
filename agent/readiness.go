package agent

import "github.com/beka-birhanu/decision-maze/geometry"

// readiness defers spawn requests until the host signals that the agent's
// presentation assets are loaded. Only the latest request is kept.
type readiness struct {
	ready   bool
	pending *geometry.Vec
}

// admit reports whether a spawn at pos may run now. Otherwise pos replaces
// any earlier pending request.
func (r *readiness) admit(pos geometry.Vec) bool {
	if r.ready {
		return true
	}
	r.pending = &pos
	return false
}

// markReady flips the flag and hands back the pending request, at most once.
func (r *readiness) markReady() (geometry.Vec, bool) {
	r.ready = true
	if r.pending == nil {
		return geometry.Vec{}, false
	}
	pos := *r.pending
	r.pending = nil
	return pos, true
}
