package maze

// ReachableFrom returns every cell connected to start through open edges.
func (m *Maze) ReachableFrom(start CellPosition) map[CellPosition]bool {
	seen := make(map[CellPosition]bool)
	if !m.IsValid(start.X, start.Y) {
		return seen
	}

	queue := []CellPosition{start}
	seen[start] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, q := range m.OpenNeighbors(p) {
			if !seen[q] {
				seen[q] = true
				queue = append(queue, q)
			}
		}
	}
	return seen
}

func (m *Maze) exitsReachable() bool {
	seen := m.ReachableFrom(m.layout.SpawnCell())
	for _, e := range m.exits {
		if !seen[e.Cell] {
			return false
		}
	}
	return true
}
