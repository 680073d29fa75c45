package maze

// setEdge sets the wall between p and its neighbor toward d on both sides.
// Only p's side is touched when the neighbor is off the grid.
func (m *Maze) setEdge(p CellPosition, d Direction, closed bool) {
	if !m.IsValid(p.X, p.Y) {
		return
	}
	m.grid[p.Y][p.X].Walls[d] = closed
	if q := p.Step(d); m.IsValid(q.X, q.Y) {
		m.grid[q.Y][q.X].Walls[d.Opposite()] = closed
	}
}

// openCell clears all four sides of p and marks it as a forced path cell.
func (m *Maze) openCell(p CellPosition) {
	if !m.IsValid(p.X, p.Y) {
		return
	}
	for _, d := range Directions {
		m.setEdge(p, d, false)
	}
	m.grid[p.Y][p.X].IsPath = true
}

func (m *Maze) exitColumns() [2]int {
	left, right := m.layout.ExitColumns()
	return [2]int{left, right}
}

func (m *Maze) isExitCell(x, y int) bool {
	cols := m.exitColumns()
	return y == 0 && (x == cols[0] || x == cols[1])
}

// carveExitCorridors opens each exit column from row 2 up to row 0, widens the
// corridor toward the side neighbors and opens both exit cells completely.
func (m *Maze) carveExitCorridors() {
	for _, col := range m.exitColumns() {
		for y := 2; y >= 0; y-- {
			p := CellPosition{X: col, Y: y}
			if !m.IsValid(p.X, p.Y) {
				continue
			}
			m.setEdge(p, Up, false)
			if col > 0 && col < m.cfg.Width-1 {
				m.setEdge(p, Left, false)
				m.setEdge(p, Right, false)
			}
		}
		m.openCell(CellPosition{X: col, Y: 0})
	}
}

// blockPerimeter walls off the two outermost rings so routes cannot hug the
// boundary, then re-opens the exit corridors.
func (m *Maze) blockPerimeter() {
	w, h := m.cfg.Width, m.cfg.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.isExitCell(x, y) {
				continue
			}
			if x != 0 && x != w-1 && y != 0 && y != h-1 {
				continue
			}

			p := CellPosition{X: x, Y: y}
			if x <= 1 {
				m.setEdge(p, Right, true)
			}
			if x >= w-2 {
				m.setEdge(p, Left, true)
			}
			if y <= 1 {
				m.setEdge(p, Down, true)
			}
			if y >= h-2 {
				m.setEdge(p, Up, true)
			}
		}
	}
	m.clearExitPaths()
}

// clearExitPaths re-opens the vertical edges of both exit columns for rows 0 to 2.
func (m *Maze) clearExitPaths() {
	for _, col := range m.exitColumns() {
		for y := 0; y < 3; y++ {
			if m.IsValid(col, y) {
				m.setEdge(CellPosition{X: col, Y: y}, Up, false)
			}
		}
	}
}

// clearStartArea opens a 3x3 pocket over the bottom three rows around the
// entry column and a funnel above it narrowing from three cells to one.
func (m *Maze) clearStartArea() {
	w, h := m.cfg.Width, m.cfg.Height
	entry := w / 2

	for x := entry - 1; x <= entry+1; x++ {
		for y := h - 3; y < h; y++ {
			m.openCell(CellPosition{X: x, Y: y})
		}
	}

	for x := entry - 1; x <= entry+1; x++ {
		m.openCell(CellPosition{X: x, Y: h - 4})
	}
	m.openCell(CellPosition{X: entry, Y: h - 5})
}

// repairWalls closes every shared edge whose two sides disagree and returns
// the number of edges it closed.
func (m *Maze) repairWalls() int {
	w, h := m.cfg.Width, m.cfg.Height
	repaired := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w-1 && m.grid[y][x].Walls[Right] != m.grid[y][x+1].Walls[Left] {
				m.grid[y][x].Walls[Right] = true
				m.grid[y][x+1].Walls[Left] = true
				repaired++
			}
			if y < h-1 && m.grid[y][x].Walls[Down] != m.grid[y+1][x].Walls[Up] {
				m.grid[y][x].Walls[Down] = true
				m.grid[y+1][x].Walls[Up] = true
				repaired++
			}
		}
	}
	return repaired
}

// openExitCells clears every side of both exit cells and the matching side of
// their neighbors. It reports whether any wall changed.
func (m *Maze) openExitCells() bool {
	changed := false
	for _, col := range m.exitColumns() {
		p := CellPosition{X: col, Y: 0}
		for _, d := range Directions {
			if !m.grid[p.Y][p.X].Walls[d] {
				if q := p.Step(d); !m.IsValid(q.X, q.Y) || !m.grid[q.Y][q.X].Walls[d.Opposite()] {
					continue
				}
			}
			m.setEdge(p, d, false)
			changed = true
		}
		m.grid[p.Y][p.X].IsPath = true
	}
	return changed
}

// clearVisited drops generation scratch state.
func (m *Maze) clearVisited() {
	for y := range m.grid {
		for x := range m.grid[y] {
			m.grid[y][x].Visited = false
		}
	}
}
