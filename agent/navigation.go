package agent

import (
	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/random"
)

// planRoute picks a fresh route from the current cell. Most of the time the
// route first wanders to a random interior cell and only then heads for an
// exit. When no route exists the agent stays idle where it is.
func (a *Agent) planRoute() {
	current := a.CurrentCell()

	if random.Chance(a.src, a.cfg.ExploreChance) {
		l := a.maze.Layout()
		mid := maze.CellPosition{
			X: a.src.Intn(l.Width-4) + 2,
			Y: a.src.Intn(l.Height-4) + 2,
		}
		if leg, err := a.planner.Search(current, mid); err == nil && len(leg) > 0 {
			if exitLeg, ok := a.searchExits(mid, random.Chance(a.src, 0.5)); ok {
				leg = append(leg, exitLeg[1:]...)
			}
			a.debugf("exploring through cell (%d, %d)", mid.X, mid.Y)
			a.follow(leg)
			return
		}
	}

	if path, ok := a.searchExits(current, random.Chance(a.src, 0.5)); ok {
		a.follow(path)
		return
	}

	a.state = Idle
	a.target = nil
	a.waypoints = nil
	a.debug("no route to either exit, staying idle")
}

// searchExits searches from start to the preferred exit and falls back to
// the other one.
func (a *Agent) searchExits(start maze.CellPosition, preferLeft bool) ([]maze.CellPosition, bool) {
	exits := a.maze.Exits()
	order := []maze.Exit{exits[maze.LeftExit], exits[maze.RightExit]}
	if !preferLeft {
		order[0], order[1] = order[1], order[0]
	}

	for _, e := range order {
		path, err := a.planner.Search(start, e.Cell)
		if err == nil && len(path) > 0 {
			return path, true
		}
	}
	return nil, false
}

// replanToExits plans from the current cell to the left exit, then the right.
func (a *Agent) replanToExits() bool {
	path, ok := a.searchExits(a.CurrentCell(), true)
	if !ok {
		return false
	}
	a.follow(path)
	return true
}

// follow replaces the waypoint queue with the centers of path.
func (a *Agent) follow(path []maze.CellPosition) {
	l := a.maze.Layout()
	waypoints := make([]geometry.Vec, len(path))
	for i, p := range path {
		waypoints[i] = l.CellCenter(p)
	}

	a.waypoints = waypoints
	a.target = nil
	a.state = Exploring
	a.nextWaypoint()
}

// nextWaypoint dequeues the next target. An empty queue ends the route: at an
// exit that is the goal, anywhere else the agent plans again.
func (a *Agent) nextWaypoint() {
	if len(a.waypoints) > 0 {
		next := a.waypoints[0]
		a.waypoints = a.waypoints[1:]
		a.target = &next
		return
	}

	a.target = nil
	if exit, ok := a.exitNear(a.CurrentCell()); ok {
		a.reachGoal(exit)
		return
	}
	if !a.replanToExits() {
		a.state = Idle
		a.debug("route ended away from the exits and no new route was found")
	}
}

// move steps toward the target when the step is collision free. A blocked
// step triggers recovery straight away.
func (a *Agent) move(dt float64) {
	offset := a.target.Sub(a.position)
	dist := offset.Len()
	dir := offset.Normalize()
	next := a.position.Add(dir.Scale(min(a.cfg.MoveSpeed*dt, dist)))

	if a.Blocked(next) {
		a.recover()
		return
	}

	a.position = next
	if dist > 0 {
		a.heading = geometry.LerpAngle(a.heading, dir.Heading(), a.cfg.RotationLerpFactor)
	}
	if a.state == Recovering {
		a.state = Exploring
	}

	if a.position.DistanceTo(*a.target) < a.cfg.ArrivalDistance {
		a.nextWaypoint()
	}
	a.checkGoal()
}

// detectStuck samples the displacement every StuckCheckInterval seconds and
// forces a recovery once too little progress accumulates past MaxStuckTime.
func (a *Agent) detectStuck(dt float64) {
	if a.target == nil || a.state == Celebrating {
		return
	}

	a.stuckTimer += dt
	if a.stuckTimer < a.cfg.StuckCheckInterval {
		return
	}
	a.stuckTimer = 0

	current := a.position
	if a.lastPosition != nil {
		if current.DistanceTo(*a.lastPosition) < a.cfg.StuckThreshold {
			a.stuckTime += a.cfg.StuckCheckInterval
			if a.stuckTime >= a.cfg.MaxStuckTime {
				a.debug("no progress detected, recovering")
				a.recover()
				a.stuckTime = 0
			}
		} else {
			a.stuckTime = 0
		}
	}
	a.lastPosition = &current
}
