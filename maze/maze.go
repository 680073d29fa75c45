// Package maze owns the cell grid: generation, the post-generation passes,
// the wall graph queries used by path search, and the mapping to world space.
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/random"
	"github.com/paulmach/orb"
)

// Maze-related errors.
var (
	ErrOutOfBounds        = errors.New("maze: cell out of bounds")
	ErrInvalidDimensions  = errors.New("maze: dimension is not big enough")
	ErrInvalidCellSize    = errors.New("maze: cell size and wall height must be positive")
	ErrInvalidProbability = errors.New("maze: bias probability must be within [0, 1]")
	ErrEmptyLabel         = errors.New("maze: exit label is empty")
	ErrNotGenerated       = errors.New("maze: generate has not been called")
)

const (
	minDimension = 7 // Minimum maze dimension (width or height).

	defaultMaxAttempts = 16
	wallThickness      = 0.2
)

// Bias holds the probabilities steering the carving walk.
type Bias struct {
	UpBase     float64 `yaml:"up_base"`    // Base chance of preferring up.
	UpScale    float64 `yaml:"up_scale"`   // Extra up chance scaled by row progress.
	Horizontal float64 `yaml:"horizontal"` // Chance of preferring the side toward the center.
	Shuffle    float64 `yaml:"shuffle"`    // Chance of shuffling the preference list.
	Backtrack  float64 `yaml:"backtrack"`  // Chance of opening an edge to an already visited neighbor.
}

// Config describes the grid and its world-space scale.
type Config struct {
	Width       int
	Height      int
	CellSize    float64
	WallHeight  float64
	Bias        Bias
	MaxAttempts int // Generation attempts before accepting an unreachable exit.
}

// DefaultBias returns the carving probabilities used by the stock experience.
func DefaultBias() Bias {
	return Bias{UpBase: 0.15, UpScale: 0.2, Horizontal: 0.3, Shuffle: 0.6, Backtrack: 0.2}
}

// DefaultConfig returns a 20x20 maze with 2.4 unit cells.
func DefaultConfig() Config {
	return Config{
		Width:       20,
		Height:      20,
		CellSize:    2.4,
		WallHeight:  2.0,
		Bias:        DefaultBias(),
		MaxAttempts: defaultMaxAttempts,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width < minDimension || c.Height < minDimension {
		return fmt.Errorf("%w: %dx%d, need at least %d", ErrInvalidDimensions, c.Width, c.Height, minDimension)
	}
	if c.CellSize <= 0 || c.WallHeight <= 0 {
		return ErrInvalidCellSize
	}
	for _, p := range []float64{c.Bias.UpBase, c.Bias.UpBase + c.Bias.UpScale, c.Bias.Horizontal, c.Bias.Shuffle, c.Bias.Backtrack} {
		if p < 0 || p > 1 {
			return ErrInvalidProbability
		}
	}
	return nil
}

// ExitSide identifies one of the two exits.
type ExitSide int

const (
	LeftExit ExitSide = iota
	RightExit
)

func (s ExitSide) String() string {
	if s == LeftExit {
		return "left"
	}
	return "right"
}

// Exit is a row-0 cell bound to a caller supplied label.
type Exit struct {
	Side   ExitSide     `json:"side"`
	Cell   CellPosition `json:"cell"`
	Center geometry.Vec `json:"center"`
	Label  string       `json:"label"`
}

// Maze is a grid of cells plus the renderable walls derived from it.
// It is not safe for concurrent use.
type Maze struct {
	cfg       Config
	layout    Layout
	grid      [][]Cell // indexed [y][x]
	src       random.Source
	exits     [2]Exit
	segments  []geometry.WallSegment
	index     *geometry.SegmentIndex
	generated bool
	reachable bool
	attempts  int
	repairs   int
}

// New allocates a fully walled, unvisited grid. Call Generate to carve it.
func New(cfg Config, src random.Source) (*Maze, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Maze{
		cfg:    cfg,
		layout: Layout{Width: cfg.Width, Height: cfg.Height, CellSize: cfg.CellSize},
		src:    src,
	}
	m.reset()

	left, right := m.layout.ExitColumns()
	m.exits = [2]Exit{
		{Side: LeftExit, Cell: CellPosition{X: left, Y: 0}, Center: m.layout.CellCenter(CellPosition{X: left, Y: 0})},
		{Side: RightExit, Cell: CellPosition{X: right, Y: 0}, Center: m.layout.CellCenter(CellPosition{X: right, Y: 0})},
	}
	return m, nil
}

// reset allocates a fully walled grid.
func (m *Maze) reset() {
	grid := make([][]Cell, m.cfg.Height)
	for y := range grid {
		grid[y] = make([]Cell, m.cfg.Width)
		for x := range grid[y] {
			grid[y][x] = closedCell()
		}
	}
	m.grid = grid
}

func (m *Maze) Width() int { return m.cfg.Width }

func (m *Maze) Height() int { return m.cfg.Height }

// Layout returns the grid to world mapping.
func (m *Maze) Layout() Layout { return m.layout }

// IsValid reports whether (x, y) lies on the grid.
func (m *Maze) IsValid(x, y int) bool {
	return x >= 0 && x < m.cfg.Width && y >= 0 && y < m.cfg.Height
}

// CellAt returns a copy of the cell at (x, y).
func (m *Maze) CellAt(x, y int) (Cell, error) {
	if !m.IsValid(x, y) {
		return Cell{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return m.grid[y][x], nil
}

// CanMove reports whether the edge between p and its neighbor toward d is
// open from both sides.
func (m *Maze) CanMove(p CellPosition, d Direction) bool {
	q := p.Step(d)
	if !m.IsValid(p.X, p.Y) || !m.IsValid(q.X, q.Y) {
		return false
	}
	return !m.grid[p.Y][p.X].Walls[d] && !m.grid[q.Y][q.X].Walls[d.Opposite()]
}

// OpenNeighbors returns the cells reachable from p in one step.
func (m *Maze) OpenNeighbors(p CellPosition) []CellPosition {
	neighbors := make([]CellPosition, 0, 4)
	for _, d := range Directions {
		if m.CanMove(p, d) {
			neighbors = append(neighbors, p.Step(d))
		}
	}
	return neighbors
}

// AddExits binds labels to the left and right exits and makes sure both exit
// cells are open. It must follow Generate.
func (m *Maze) AddExits(labelA, labelB string) error {
	if !m.generated {
		return ErrNotGenerated
	}
	if strings.TrimSpace(labelA) == "" || strings.TrimSpace(labelB) == "" {
		return ErrEmptyLabel
	}

	m.exits[LeftExit].Label = labelA
	m.exits[RightExit].Label = labelB
	if m.openExitCells() {
		m.buildSegments()
	}
	return nil
}

// Exits returns the left and right exits.
func (m *Maze) Exits() [2]Exit {
	return m.exits
}

// ExitAt returns the exit whose column is within one cell of p.X, preferring
// the left exit.
func (m *Maze) ExitAt(p CellPosition) (Exit, bool) {
	for _, e := range m.exits {
		if abs(p.X-e.Cell.X) <= 1 {
			return e, true
		}
	}
	return Exit{}, false
}

// StartPosition returns the spawn point one cell outside the entry side.
func (m *Maze) StartPosition() geometry.Vec {
	return m.layout.StartPosition()
}

// Segments returns the wall segments of the last generated maze.
func (m *Maze) Segments() []geometry.WallSegment {
	out := make([]geometry.WallSegment, len(m.segments))
	copy(out, m.segments)
	return out
}

// SegmentsIn returns the wall segments whose footprint intersects b.
func (m *Maze) SegmentsIn(b orb.Bound) []geometry.WallSegment {
	if m.index == nil {
		return []geometry.WallSegment{}
	}
	return m.index.QueryRegion(b)
}

func (m *Maze) String() string {
	var sb strings.Builder

	for y := 0; y < m.cfg.Height; y++ {
		// Top walls
		sb.WriteString("+")
		for x := 0; x < m.cfg.Width; x++ {
			if m.grid[y][x].Walls[Up] {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")

		// Cell rows
		if m.grid[y][0].Walls[Left] {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for x := 0; x < m.cfg.Width; x++ {
			body := "   "
			for _, e := range m.exits {
				if e.Cell.X == x && e.Cell.Y == y {
					body = " E "
				}
			}
			if m.grid[y][x].Walls[Right] {
				sb.WriteString(body + "|")
			} else {
				sb.WriteString(body + " ")
			}
		}
		sb.WriteString("\n")
	}

	// Bottom boundary
	sb.WriteString("+")
	for x := 0; x < m.cfg.Width; x++ {
		if m.grid[m.cfg.Height-1][x].Walls[Down] {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
