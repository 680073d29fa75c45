package agent

import (
	"math"

	"github.com/beka-birhanu/decision-maze/maze"
)

type celebration struct {
	elapsed float64
	initial float64
}

// pendingResult holds a goal label until its delay runs out.
type pendingResult struct {
	label     string
	remaining float64
	active    bool
}

// exitNear returns the exit whose column is within one cell of p when p is in
// row 0 or 1. The left exit wins ties.
func (a *Agent) exitNear(p maze.CellPosition) (maze.Exit, bool) {
	if p.Y > 1 {
		return maze.Exit{}, false
	}
	for _, e := range a.maze.Exits() {
		if abs(p.X-e.Cell.X) <= 1 {
			return e, true
		}
	}
	return maze.Exit{}, false
}

// checkGoal fires when the agent is close to the top boundary, horizontally
// close to an exit, and its cell lies next to an exit column in row 0 or 1.
func (a *Agent) checkGoal() {
	if a.goalReached || a.state == Celebrating {
		return
	}

	l := a.maze.Layout()
	cs := l.CellSize
	_, hh := l.HalfExtents()
	if a.position.Z > -hh+a.cfg.GoalVertical*cs {
		return
	}

	near := false
	for _, e := range a.maze.Exits() {
		if math.Abs(a.position.X-e.Center.X) <= a.cfg.GoalHorizontal*cs {
			near = true
			break
		}
	}
	if !near {
		return
	}

	if exit, ok := a.exitNear(a.CurrentCell()); ok {
		a.reachGoal(exit)
	}
}

// reachGoal stops all movement, starts the celebration and schedules the
// result signal. It acts once per spawn.
func (a *Agent) reachGoal(exit maze.Exit) {
	if a.goalReached {
		return
	}
	a.goalReached = true

	a.state = Celebrating
	a.target = nil
	a.waypoints = nil
	a.celebration = celebration{initial: a.heading}
	a.result = pendingResult{label: exit.Label, remaining: a.cfg.ResultDelay, active: true}
	a.info("reached the " + exit.Side.String() + " exit")

	if a.cfg.ResultDelay <= 0 {
		a.emitResult()
	}
}

// celebrate spins the agent with a sine-eased sweep and settles on the
// canonical heading when the celebration ends.
func (a *Agent) celebrate(dt float64) {
	a.celebration.elapsed += dt
	progress := a.celebration.elapsed / a.cfg.CelebrationDuration
	a.heading = a.celebration.initial + 2*math.Pi*a.cfg.CelebrationSpins*math.Sin(progress*math.Pi/2)

	if a.celebration.elapsed >= a.cfg.CelebrationDuration {
		a.celebration = celebration{}
		a.heading = canonicalHeading
		a.state = Idle
	}
}

func (a *Agent) tickResult(dt float64) {
	if !a.result.active {
		return
	}
	a.result.remaining -= dt
	if a.result.remaining <= 0 {
		a.emitResult()
	}
}

func (a *Agent) emitResult() {
	label := a.result.label
	a.result = pendingResult{}
	if a.onGoal != nil {
		a.onGoal(label)
	}
}
