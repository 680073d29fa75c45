package maze

// Direction names one side of a cell. The numeric values index Cell.Walls.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the four sides in wall-index order.
var Directions = [4]Direction{Up, Right, Down, Left}

var directionDeltas = [4]CellPosition{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

// Opposite returns the side facing d across a shared edge.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the grid offset of a single step toward d.
func (d Direction) Delta() CellPosition {
	return directionDeltas[d]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "unknown"
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	// Visited is generation scratch state. It carries no meaning after Generate returns.
	Visited bool `json:"-"`
	// Walls holds the closed flag for each side, indexed by Direction.
	Walls [4]bool `json:"walls"`
	// IsPath marks cells forced open by the corridor and start-area passes.
	IsPath bool `json:"is_path"`
}

func closedCell() Cell {
	return Cell{Walls: [4]bool{true, true, true, true}}
}

// HasWall reports whether the side d is closed.
func (c Cell) HasWall(d Direction) bool {
	return c.Walls[d]
}

// WallCount returns the number of closed sides.
func (c Cell) WallCount() int {
	n := 0
	for _, w := range c.Walls {
		if w {
			n++
		}
	}
	return n
}

// CellPosition addresses a cell by column X and row Y. Row 0 is the exit row.
type CellPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the position one cell toward d.
func (p CellPosition) Step(d Direction) CellPosition {
	delta := d.Delta()
	return CellPosition{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// DirectionTo returns the side of p that faces the adjacent cell q.
func (p CellPosition) DirectionTo(q CellPosition) (Direction, bool) {
	for _, d := range Directions {
		if p.Step(d) == q {
			return d, true
		}
	}
	return 0, false
}
