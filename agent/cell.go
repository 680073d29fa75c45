package agent

import "github.com/beka-birhanu/decision-maze/maze"

// CurrentCell maps the agent position to a grid cell. A cell with more than
// two closed sides is treated as off the carved routes and replaced by the
// nearest open cell within NearestCellRadius rings. Positions off the grid,
// or with no open cell nearby, resolve to the spawn cell.
func (a *Agent) CurrentCell() maze.CellPosition {
	l := a.maze.Layout()
	p := l.CellOf(a.position)

	if a.maze.IsValid(p.X, p.Y) {
		if !a.blockedCell(p) {
			return p
		}
		if q, ok := a.nearestOpenCell(p); ok {
			return q
		}
	}
	return l.SpawnCell()
}

func (a *Agent) blockedCell(p maze.CellPosition) bool {
	cell, err := a.maze.CellAt(p.X, p.Y)
	if err != nil {
		return true
	}
	return cell.WallCount() > 2
}

// nearestOpenCell scans square rings of growing radius around p.
func (a *Agent) nearestOpenCell(p maze.CellPosition) (maze.CellPosition, bool) {
	for d := 0; d <= a.cfg.NearestCellRadius; d++ {
		for dy := -d; dy <= d; dy++ {
			for dx := -d; dx <= d; dx++ {
				if abs(dx) != d && abs(dy) != d {
					continue
				}
				q := maze.CellPosition{X: p.X + dx, Y: p.Y + dy}
				if a.maze.IsValid(q.X, q.Y) && !a.blockedCell(q) {
					return q, true
				}
			}
		}
	}
	return maze.CellPosition{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
