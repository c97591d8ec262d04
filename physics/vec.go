package physics

import "github.com/jakecoffman/cp"

// Vec2 is a vector in world units (meters).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) cp() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}
