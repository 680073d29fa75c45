package maze

import "github.com/beka-birhanu/decision-maze/geometry"

// buildSegments derives the renderable walls from the grid: solid left and
// right perimeter walls, a bottom wall split around a two-cell entry gap, and
// one segment per closed interior edge. The top of the maze has no perimeter
// wall; the top edges of row 1 close it except at the exits.
func (m *Maze) buildSegments() {
	cs, height := m.cfg.CellSize, m.cfg.WallHeight
	hw, hh := m.layout.HalfExtents()
	entry := 2 * cs
	side := hw - entry/2

	segments := []geometry.WallSegment{
		{Center: geometry.Vec{X: -hw, Z: 0}, Orientation: geometry.AlongZ, Length: 2 * hh, Thickness: wallThickness, Height: height},
		{Center: geometry.Vec{X: hw, Z: 0}, Orientation: geometry.AlongZ, Length: 2 * hh, Thickness: wallThickness, Height: height},
	}
	if side > 0 {
		segments = append(segments,
			geometry.WallSegment{Center: geometry.Vec{X: -hw + side/2, Z: hh}, Orientation: geometry.AlongX, Length: side, Thickness: wallThickness, Height: height},
			geometry.WallSegment{Center: geometry.Vec{X: hw - side/2, Z: hh}, Orientation: geometry.AlongX, Length: side, Thickness: wallThickness, Height: height},
		)
	}

	for y := 1; y < m.cfg.Height-1; y++ {
		for x := 1; x < m.cfg.Width-1; x++ {
			p := CellPosition{X: x, Y: y}
			origin := m.layout.CellMin(p)
			cell := m.grid[y][x]

			if cell.Walls[Up] {
				segments = append(segments, geometry.WallSegment{
					Center:      geometry.Vec{X: origin.X + cs/2, Z: origin.Z},
					Orientation: geometry.AlongX,
					Length:      cs,
					Thickness:   wallThickness,
					Height:      height,
				})
			}
			// The perimeter already covers the left edge of column 1.
			if x > 1 && cell.Walls[Left] {
				segments = append(segments, geometry.WallSegment{
					Center:      geometry.Vec{X: origin.X, Z: origin.Z + cs/2},
					Orientation: geometry.AlongZ,
					Length:      cs,
					Thickness:   wallThickness,
					Height:      height,
				})
			}
		}
	}

	m.segments = segments
	m.index = geometry.NewSegmentIndex(segments)
}
