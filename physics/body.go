package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigidbodies/common"
)

// BodyType mirrors the engine's body kinds the demo supports.
type BodyType int

const (
	StaticBody BodyType = iota
	DynamicBody
)

func (t BodyType) String() string {
	switch t {
	case StaticBody:
		return "static"
	case DynamicBody:
		return "dynamic"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

// BodyID is an opaque handle into the world's body registry.
type BodyID int

// BodyDef describes a body before it is created. Position is in meters, Angle in radians.
type BodyDef struct {
	Name     string
	Type     BodyType
	Position Vec2
	Angle    float64
}

func (d BodyDef) validate() error {
	if d.Type != StaticBody && d.Type != DynamicBody {
		return fmt.Errorf("%w: unsupported type %v", ErrInvalidBodyDef, d.Type)
	}
	if !common.IsFinite(d.Position.X) || !common.IsFinite(d.Position.Y) {
		return fmt.Errorf("%w: position (%v, %v)", ErrInvalidBodyDef, d.Position.X, d.Position.Y)
	}
	if !common.IsFinite(d.Angle) {
		return fmt.Errorf("%w: angle %v", ErrInvalidBodyDef, d.Angle)
	}
	return nil
}

// Body is a rigid body owned by a World.
type Body struct {
	id       BodyID
	name     string
	kind     BodyType
	world    *World
	body     *cp.Body
	fixtures []*Fixture
}

func newEngineBody(def BodyDef) *cp.Body {
	var b *cp.Body
	if def.Type == StaticBody {
		b = cp.NewStaticBody()
	} else {
		// Unit mass until a fixture with density replaces it.
		b = cp.NewBody(1, math.Inf(1))
	}
	b.SetPosition(def.Position.cp())
	b.SetAngle(def.Angle)
	return b
}

func (b *Body) ID() BodyID     { return b.id }
func (b *Body) Name() string   { return b.name }
func (b *Body) Type() BodyType { return b.kind }

func (b *Body) Position() Vec2 {
	return fromCP(b.body.Position())
}

func (b *Body) Angle() float64 {
	return b.body.Angle()
}

func (b *Body) LinearVelocity() Vec2 {
	return fromCP(b.body.Velocity())
}

func (b *Body) SetLinearVelocity(v Vec2) {
	b.body.SetVelocityVector(v.cp())
}

func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// Mass is zero for static bodies.
func (b *Body) Mass() float64 {
	if b.kind == StaticBody {
		return 0
	}
	return b.body.Mass()
}

func (b *Body) Fixtures() []*Fixture {
	out := make([]*Fixture, len(b.fixtures))
	copy(out, b.fixtures)
	return out
}

// CreateFixture attaches a shape to the body and adds it to the world.
func (b *Body) CreateFixture(def FixtureDef) (*Fixture, error) {
	if b == nil || b.world == nil {
		return nil, fmt.Errorf("physics: create fixture on detached body")
	}
	if def.Shape == nil {
		return nil, ErrNilShape
	}
	if err := def.Shape.validate(); err != nil {
		return nil, fmt.Errorf("physics: body %q: %w", b.name, err)
	}
	if err := def.validateMaterial(); err != nil {
		return nil, fmt.Errorf("physics: body %q: %w", b.name, err)
	}

	shape := def.Shape.attach(b.body)
	b.world.space.AddShape(shape)

	f := &Fixture{body: b, shape: shape, geometry: def.Shape, density: def.Density}
	shape.UserData = f
	shape.SetCollisionType(fixtureCollisionType)
	shape.SetElasticity(0)
	f.SetFriction(def.friction())
	if def.Restitution != nil {
		f.SetRestitution(*def.Restitution)
	}

	if b.kind == DynamicBody && def.Density > 0 {
		shape.SetDensity(def.Density)
	}
	b.ensureMass()

	b.fixtures = append(b.fixtures, f)
	return f, nil
}

// ensureMass gives massless dynamic bodies unit mass and fixed rotation, the
// engine rejects zero mass during velocity integration.
func (b *Body) ensureMass() {
	if b.kind != DynamicBody {
		return
	}
	if m := b.body.Mass(); m > 0 && !math.IsInf(m, 0) && !math.IsNaN(m) {
		return
	}
	b.body.SetMass(1)
	b.body.SetMoment(math.Inf(1))
}
