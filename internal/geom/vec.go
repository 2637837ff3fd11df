package geom

import "math"

// Vec2 is a 2D point or offset in screen pixels (y grows downward).
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Rotate rotates v in place about the origin by angle radians.
func (v *Vec2) Rotate(angle float64) {
	s, c := math.Sincos(angle)
	v.X, v.Y = v.X*c-v.Y*s, v.X*s+v.Y*c
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
