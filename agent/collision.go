package agent

import (
	"math"

	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
)

// Blocked reports whether pos collides with the maze. The entry band and the
// two exit lanes are always free. Elsewhere a position is blocked outside the
// padded interior, or when it sits within the collision margin of a closed
// side of its cell. The margin is tighter in rows 0 and 1.
func (a *Agent) Blocked(pos geometry.Vec) bool {
	l := a.maze.Layout()
	cs := l.CellSize
	_, hh := l.HalfExtents()

	if pos.Z >= hh-cs {
		return false
	}
	if pos.Z <= -hh+cs {
		for _, e := range a.maze.Exits() {
			if math.Abs(pos.X-e.Center.X) < cs {
				return false
			}
		}
	}

	if !l.InteriorBound().Pad(a.cfg.OuterMargin).Contains(pos.Point()) {
		return true
	}

	p := l.CellOf(pos)
	cell, err := a.maze.CellAt(p.X, p.Y)
	if err != nil {
		return true
	}

	margin := a.cfg.CollisionMargin
	if p.Y <= 1 {
		margin = a.cfg.ExitCollisionMargin
	}

	lx, lz := l.Local(pos, p)
	switch {
	case cell.Walls[maze.Up] && lz < margin:
		return true
	case cell.Walls[maze.Right] && lx > 1-margin:
		return true
	case cell.Walls[maze.Down] && lz > 1-margin:
		return true
	case cell.Walls[maze.Left] && lx < margin:
		return true
	}
	return false
}
