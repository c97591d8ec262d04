package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigidbodies/common"
)

const defaultFriction = 0.2

// FixtureDef describes a shape and its material. A nil Restitution means 0,
// a nil Friction uses 0.2.
type FixtureDef struct {
	Shape       Shape
	Density     float64
	Friction    *float64
	Restitution *float64
}

func (d FixtureDef) friction() float64 {
	if d.Friction == nil {
		return defaultFriction
	}
	return *d.Friction
}

func (d FixtureDef) validateMaterial() error {
	if !common.IsFinite(d.Density) || d.Density < 0 {
		return fmt.Errorf("%w: density %v", ErrInvalidMaterial, d.Density)
	}
	if f := d.friction(); !common.IsFinite(f) || f < 0 {
		return fmt.Errorf("%w: friction %v", ErrInvalidMaterial, f)
	}
	if d.Restitution != nil {
		if r := *d.Restitution; !common.IsFinite(r) || r < 0 || r > 1 {
			return fmt.Errorf("%w: restitution %v", ErrInvalidMaterial, r)
		}
	}
	return nil
}

// Fixture binds a shape to its body.
type Fixture struct {
	body        *Body
	shape       *cp.Shape
	geometry    Shape
	density     float64
	friction    float64
	restitution float64
}

func (f *Fixture) Body() *Body      { return f.body }
func (f *Fixture) Shape() Shape     { return f.geometry }
func (f *Fixture) Density() float64 { return f.density }

func (f *Fixture) Friction() float64 { return f.friction }

// SetFriction stores sqrt(u) on the engine shape. The engine multiplies the
// two coefficients of a contact pair, so the pair sees sqrt(ua*ub).
func (f *Fixture) SetFriction(u float64) {
	if u < 0 {
		u = 0
	}
	f.friction = u
	f.shape.SetFriction(math.Sqrt(u))
}

func (f *Fixture) Restitution() float64 { return f.restitution }

// SetRestitution sets the bounce coefficient, clamped to [0, 1]. A contact
// bounces with the larger coefficient of its two fixtures.
func (f *Fixture) SetRestitution(r float64) {
	f.restitution = common.Clamp(r, 0, 1)
}
