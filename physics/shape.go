package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigidbodies/common"
)

// Shape is collision geometry in body-local world units.
type Shape interface {
	// Kind names the geometry for logs and errors.
	Kind() string
	validate() error
	attach(body *cp.Body) *cp.Shape
}

// BoxShape is a rectangle centered on the body origin.
type BoxShape struct {
	HalfWidth  float64
	HalfHeight float64
}

func (BoxShape) Kind() string { return "box" }

func (s BoxShape) validate() error {
	if !common.IsFinite(s.HalfWidth) || !common.IsFinite(s.HalfHeight) || s.HalfWidth <= 0 || s.HalfHeight <= 0 {
		return fmt.Errorf("%w: box half extents (%v, %v)", ErrInvalidShape, s.HalfWidth, s.HalfHeight)
	}
	return nil
}

func (s BoxShape) attach(body *cp.Body) *cp.Shape {
	return cp.NewBox(body, s.HalfWidth*2, s.HalfHeight*2, 0)
}

// CircleShape is a circle centered on the body origin.
type CircleShape struct {
	Radius float64
}

func (CircleShape) Kind() string { return "circle" }

func (s CircleShape) validate() error {
	if !common.IsFinite(s.Radius) || s.Radius <= 0 {
		return fmt.Errorf("%w: circle radius %v", ErrInvalidShape, s.Radius)
	}
	return nil
}

func (s CircleShape) attach(body *cp.Body) *cp.Shape {
	return cp.NewCircle(body, s.Radius, cp.Vector{})
}
