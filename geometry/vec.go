// Package geometry holds the world-space primitives shared by the maze layout,
// the navigation agent and the presentation adapters. The world is the ground
// plane: X grows to the right and Z grows toward the maze entry.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Vec is a point or direction on the ground plane.
type Vec struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Z: v.Z + o.Z} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Z: v.Z - o.Z} }

func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Z: v.Z * s} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Z) }

// Normalize returns the unit vector of v, or the zero vector when v is zero.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Z: v.Z / l}
}

// DistanceTo returns the euclidean distance between v and o.
func (v Vec) DistanceTo(o Vec) float64 {
	return planar.Distance(v.Point(), o.Point())
}

// Heading returns the yaw that faces along v, measured from +Z toward +X.
func (v Vec) Heading() float64 {
	return math.Atan2(v.X, v.Z)
}

// Point converts v to an orb point (X, Z).
func (v Vec) Point() orb.Point {
	return orb.Point{v.X, v.Z}
}

// FromPoint converts an orb point back to a Vec.
func FromPoint(p orb.Point) Vec {
	return Vec{X: p.X(), Z: p.Y()}
}

// NormalizeAngle wraps a into [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle moves from toward to by fraction t along the shortest arc. The
// result is wrapped into [-π, π].
func LerpAngle(from, to, t float64) float64 {
	return NormalizeAngle(from + NormalizeAngle(to-from)*t)
}
