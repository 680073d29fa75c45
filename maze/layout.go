package maze

import (
	"math"

	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/paulmach/orb"
)

// Layout maps grid cells to world space. The grid is centered on the origin;
// the outer ring of cells lies outside the rendered maze interior.
type Layout struct {
	Width    int
	Height   int
	CellSize float64
}

// HalfExtents returns the half width and half height of the maze interior.
func (l Layout) HalfExtents() (float64, float64) {
	return float64(l.Width-2) * l.CellSize / 2, float64(l.Height-2) * l.CellSize / 2
}

// InteriorBound returns the world footprint of the maze interior.
func (l Layout) InteriorBound() orb.Bound {
	hw, hh := l.HalfExtents()
	return orb.Bound{Min: orb.Point{-hw, -hh}, Max: orb.Point{hw, hh}}
}

// CellMin returns the world corner of p with the smallest coordinates.
func (l Layout) CellMin(p CellPosition) geometry.Vec {
	return geometry.Vec{
		X: float64(p.X)*l.CellSize - float64(l.Width)*l.CellSize/2,
		Z: float64(p.Y)*l.CellSize - float64(l.Height)*l.CellSize/2,
	}
}

// CellCenter returns the world center of p.
func (l Layout) CellCenter(p CellPosition) geometry.Vec {
	return l.CellMin(p).Add(geometry.Vec{X: l.CellSize / 2, Z: l.CellSize / 2})
}

// CellOf returns the cell containing v. The result may lie off the grid.
func (l Layout) CellOf(v geometry.Vec) CellPosition {
	return CellPosition{
		X: int(math.Floor((v.X + float64(l.Width)*l.CellSize/2) / l.CellSize)),
		Y: int(math.Floor((v.Z + float64(l.Height)*l.CellSize/2) / l.CellSize)),
	}
}

// Local returns the position of v inside p as fractions of the cell size.
func (l Layout) Local(v geometry.Vec, p CellPosition) (float64, float64) {
	origin := l.CellMin(p)
	return (v.X - origin.X) / l.CellSize, (v.Z - origin.Z) / l.CellSize
}

// ExitColumns returns the grid columns of the left and right exits.
func (l Layout) ExitColumns() (int, int) {
	return int(math.Floor(float64(l.Width) * 0.25)), int(math.Floor(float64(l.Width) * 0.75))
}

// SpawnCell is the cell the agent plans from when it stands outside the grid.
func (l Layout) SpawnCell() CellPosition {
	return CellPosition{X: l.Width / 2, Y: l.Height - 2}
}

// StartPosition is one cell depth outside the entry side, centered on X.
func (l Layout) StartPosition() geometry.Vec {
	_, hh := l.HalfExtents()
	return geometry.Vec{X: 0, Z: hh + l.CellSize}
}
