package geometry

import "github.com/paulmach/orb"

// Orientation tells which world axis a wall segment runs along.
type Orientation int

const (
	AlongX Orientation = iota // runs left to right
	AlongZ                    // runs front to back
)

func (o Orientation) String() string {
	if o == AlongX {
		return "x"
	}
	return "z"
}

// WallSegment is one renderable wall box.
type WallSegment struct {
	Center      Vec         `json:"center"`
	Orientation Orientation `json:"orientation"`
	Length      float64     `json:"length"`
	Thickness   float64     `json:"thickness"`
	Height      float64     `json:"height"`
}

// Bound returns the footprint of the segment on the ground plane.
func (s WallSegment) Bound() orb.Bound {
	hx, hz := s.Thickness/2, s.Length/2
	if s.Orientation == AlongX {
		hx, hz = s.Length/2, s.Thickness/2
	}
	return orb.Bound{
		Min: orb.Point{s.Center.X - hx, s.Center.Z - hz},
		Max: orb.Point{s.Center.X + hx, s.Center.Z + hz},
	}
}
