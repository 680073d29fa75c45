package maze

import "github.com/beka-birhanu/decision-maze/random"

// carveFrame is one level of the explicit depth-first stack.
type carveFrame struct {
	pos  CellPosition
	dirs []Direction
	next int
}

// seedCells returns the carving roots: bottom center, then the four corners.
func (m *Maze) seedCells() []CellPosition {
	w, h := m.cfg.Width, m.cfg.Height
	return []CellPosition{
		{X: w / 2, Y: h - 1},
		{X: 0, Y: 0},
		{X: w - 1, Y: 0},
		{X: 0, Y: h - 1},
		{X: w - 1, Y: h - 1},
	}
}

// carve runs the biased depth-first walk from every seed not yet reached.
func (m *Maze) carve() {
	for _, seed := range m.seedCells() {
		if !m.grid[seed.Y][seed.X].Visited {
			m.carveFrom(seed)
		}
	}
}

func (m *Maze) carveFrom(start CellPosition) {
	stack := []*carveFrame{m.visit(start)}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.dirs[top.next]
		top.next++
		q := top.pos.Step(d)
		if !m.IsValid(q.X, q.Y) || m.grid[q.Y][q.X].Visited {
			continue
		}
		m.setEdge(top.pos, d, false)
		stack = append(stack, m.visit(q))
	}
}

// visit marks p, optionally opens a loop edge to a visited neighbor and
// returns the frame holding p's direction preferences.
func (m *Maze) visit(p CellPosition) *carveFrame {
	m.grid[p.Y][p.X].Visited = true
	dirs := m.preferredDirections(p)

	if random.Chance(m.src, m.cfg.Bias.Backtrack) {
		loop := append([]Direction(nil), dirs...)
		random.Shuffle(m.src, loop)
		for _, d := range loop {
			q := p.Step(d)
			if m.IsValid(q.X, q.Y) && m.grid[q.Y][q.X].Visited {
				m.setEdge(p, d, false)
				break
			}
		}
	}

	return &carveFrame{pos: p, dirs: dirs}
}

// preferredDirections orders the four sides for p. Up is pulled to the front
// more often the lower p sits, and the side pointing back toward the center
// column is pulled to second place near either edge.
func (m *Maze) preferredDirections(p CellPosition) []Direction {
	dirs := []Direction{Up, Right, Left, Down}
	bias := m.cfg.Bias

	vertical := float64(p.Y) / float64(m.cfg.Height)
	horizontal := float64(p.X) / float64(m.cfg.Width)

	if p.Y > 0 && random.Chance(m.src, bias.UpBase+vertical*bias.UpScale) {
		dirs = promote(dirs, Up, 0)
	}

	switch {
	case horizontal < 0.4:
		if random.Chance(m.src, bias.Horizontal) {
			dirs = promote(dirs, Right, 1)
		}
	case horizontal > 0.6:
		if random.Chance(m.src, bias.Horizontal) {
			dirs = promote(dirs, Left, 1)
		}
	}

	if random.Chance(m.src, bias.Shuffle) {
		random.Shuffle(m.src, dirs)
	}
	return dirs
}

// promote moves d to index at, keeping the relative order of the others.
func promote(dirs []Direction, d Direction, at int) []Direction {
	out := make([]Direction, 0, len(dirs))
	for _, x := range dirs {
		if x != d {
			out = append(out, x)
		}
	}
	out = append(out[:at], append([]Direction{d}, out[at:]...)...)
	return out
}
