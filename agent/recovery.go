package agent

import "github.com/beka-birhanu/decision-maze/geometry"

// recoveryOffsets are unit steps tried in order: forward, right, left, back,
// then the four diagonals.
var recoveryOffsets = []geometry.Vec{
	{X: 0, Z: -1},
	{X: 1, Z: 0},
	{X: -1, Z: 0},
	{X: 0, Z: 1},
	{X: 1, Z: -1},
	{X: -1, Z: -1},
	{X: 1, Z: 1},
	{X: -1, Z: 1},
}

// recover tries to free a stuck agent. Each collision-free offset around the
// stuck position is taken in turn until a route to an exit can be planned
// from it. Failing that, the agent snaps to the center of its containing cell
// and plans from there. If nothing works it stays in Recovering and keeps its
// old route, so the next blocked step or stuck sample tries again.
func (a *Agent) recover() bool {
	a.state = Recovering
	a.recoveries++
	origin := a.position

	for _, off := range recoveryOffsets {
		candidate := origin.Add(off.Scale(a.cfg.RecoveryStep))
		if a.Blocked(candidate) {
			continue
		}
		a.position = candidate
		if a.replanToExits() {
			a.debugf("recovered at (%.2f, %.2f)", a.position.X, a.position.Z)
			return true
		}
	}

	l := a.maze.Layout()
	if p := l.CellOf(a.position); a.maze.IsValid(p.X, p.Y) {
		center := l.CellCenter(p)
		if !a.Blocked(center) {
			a.position = center
			if a.replanToExits() {
				a.debug("recovered at cell center")
				return true
			}
		}
	}

	a.state = Recovering
	a.debug("recovery failed, retrying on the next sample")
	return false
}
