package maze

import "github.com/beka-birhanu/decision-maze/geometry"

// Snapshot is a read-only copy of a generated maze for presentation layers.
type Snapshot struct {
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	CellSize   float64                `json:"cell_size"`
	WallHeight float64                `json:"wall_height"`
	Cells      [][]Cell               `json:"cells"`
	Segments   []geometry.WallSegment `json:"segments"`
	Exits      [2]Exit                `json:"exits"`
	Start      geometry.Vec           `json:"start"`
	Reachable  bool                   `json:"reachable"`
	Attempts   int                    `json:"attempts"`
	Repairs    int                    `json:"repairs"`
}

// Generate rebuilds the maze from a fully walled grid. It may be called any
// number of times; every call discards all previous state.
//
// The passes run in order: biased depth-first carving, exit corridors,
// perimeter blocking, the start pocket and wall-consistency repair. A
// breadth-first check from the spawn cell then confirms both exits can be
// reached; the whole build is retried up to MaxAttempts times when they
// cannot, and the last build is kept if every attempt fails.
func (m *Maze) Generate() Snapshot {
	for attempt := 1; attempt <= m.cfg.MaxAttempts; attempt++ {
		m.build()
		m.attempts = attempt
		m.reachable = m.exitsReachable()
		if m.reachable {
			break
		}
	}

	m.buildSegments()
	m.generated = true
	return m.Snapshot()
}

func (m *Maze) build() {
	m.reset()
	m.carve()
	m.carveExitCorridors()
	m.blockPerimeter()
	m.clearStartArea()
	m.repairs = m.repairWalls()
	m.openExitCells()
	m.clearVisited()
}

// Snapshot returns a copy of the current grid, walls and exits.
func (m *Maze) Snapshot() Snapshot {
	cells := make([][]Cell, len(m.grid))
	for y := range m.grid {
		cells[y] = make([]Cell, len(m.grid[y]))
		copy(cells[y], m.grid[y])
	}

	return Snapshot{
		Width:      m.cfg.Width,
		Height:     m.cfg.Height,
		CellSize:   m.cfg.CellSize,
		WallHeight: m.cfg.WallHeight,
		Cells:      cells,
		Segments:   m.Segments(),
		Exits:      m.exits,
		Start:      m.StartPosition(),
		Reachable:  m.reachable,
		Attempts:   m.attempts,
		Repairs:    m.repairs,
	}
}

// Reachable reports whether both exits were reachable from the spawn cell
// after the last generation.
func (m *Maze) Reachable() bool {
	return m.reachable
}
