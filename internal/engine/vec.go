package engine

import "math"

// Vec2 is a 2D vector with float64 components.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the scalar product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// LengthSq returns the squared length, avoiding the square root where a
// comparison works equally well on squared values.
func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Length() float64 { return math.Sqrt(v.LengthSq()) }

func (v Vec2) DistanceSq(o Vec2) float64 { return o.Sub(v).LengthSq() }

func (v Vec2) Distance(o Vec2) float64 { return math.Sqrt(v.DistanceSq(o)) }
