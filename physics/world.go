package physics

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"
)

// WorldConfig holds the global simulation parameters.
type WorldConfig struct {
	Gravity Vec2
	// CollisionSlop is the overlap allowed between shapes, in meters. Zero
	// selects defaultCollisionSlop.
	CollisionSlop float64
}

const defaultCollisionSlop = 0.005

// StepStats records what the last Step call asked of the solver.
type StepStats struct {
	// Calls counts every Step call, Steps only those that advanced time.
	Calls              int
	Steps              int
	LastDt             float64
	SimulatedTime      float64
	VelocityIterations int
	PositionIterations int
}

// World owns the Chipmunk space and every body created through it.
type World struct {
	space  *cp.Space
	bodies *intmap.Map[BodyID, *Body]
	order  []BodyID
	nextID BodyID

	drawer Drawer
	stats  StepStats
}

// NewWorld creates an empty world.
func NewWorld(cfg WorldConfig) *World {
	space := cp.NewSpace()
	space.SetGravity(cfg.Gravity.cp())
	slop := cfg.CollisionSlop
	if slop <= 0 {
		slop = defaultCollisionSlop
	}
	space.SetCollisionSlop(slop)

	w := &World{
		space:  space,
		bodies: intmap.New[BodyID, *Body](16),
		nextID: 1,
	}
	w.installContactHandler()
	return w
}

func (w *World) SetGravity(g Vec2) {
	w.space.SetGravity(g.cp())
}

func (w *World) Gravity() Vec2 {
	return fromCP(w.space.Gravity())
}

// CreateBody registers a new body. Fixtures are attached with Body.CreateFixture.
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	if w == nil || w.space == nil {
		return nil, fmt.Errorf("physics: create body on nil world")
	}
	if err := def.validate(); err != nil {
		if def.Name != "" {
			return nil, fmt.Errorf("physics: body %q: %w", def.Name, err)
		}
		return nil, err
	}

	b := &Body{
		id:    w.nextID,
		name:  def.Name,
		kind:  def.Type,
		world: w,
		body:  newEngineBody(def),
	}
	w.nextID++
	w.space.AddBody(b.body)
	w.bodies.Put(b.id, b)
	w.order = append(w.order, b.id)
	return b, nil
}

// Body resolves a handle.
func (w *World) Body(id BodyID) (*Body, bool) {
	return w.bodies.Get(id)
}

// BodyByName returns the first body created with the given name.
func (w *World) BodyByName(name string) (*Body, bool) {
	for _, id := range w.order {
		if b, ok := w.bodies.Get(id); ok && b.name == name {
			return b, true
		}
	}
	return nil, false
}

// Bodies returns the bodies in creation order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.order))
	for _, id := range w.order {
		if b, ok := w.bodies.Get(id); ok {
			out = append(out, b)
		}
	}
	return out
}

func (w *World) BodyCount() int {
	return w.bodies.Len()
}

// Step advances the simulation by dt seconds. Velocity iterations drive the
// engine's impulse solver. The engine corrects position error with bias
// velocity inside that same loop, so positionIterations is only recorded.
func (w *World) Step(dt float64, velocityIterations, positionIterations int) {
	if w == nil || w.space == nil {
		return
	}
	if velocityIterations < 1 {
		velocityIterations = 1
	}
	if positionIterations < 1 {
		positionIterations = 1
	}
	w.stats.Calls++
	w.stats.VelocityIterations = velocityIterations
	w.stats.PositionIterations = positionIterations
	w.stats.LastDt = dt
	if dt <= 0 {
		return
	}

	w.space.Iterations = uint(velocityIterations)
	w.space.Step(dt)
	w.stats.Steps++
	w.stats.SimulatedTime += dt
}

func (w *World) Stats() StepStats {
	return w.stats
}

// SetDebugDraw registers the receiver of DebugDraw callbacks.
func (w *World) SetDebugDraw(d Drawer) {
	w.drawer = d
}

// DebugDraw emits every shape and active contact to the registered Drawer.
func (w *World) DebugDraw() {
	if w == nil || w.space == nil {
		return
	}
	if w.drawer == nil {
		log.Printf("physics: DebugDraw called with no drawer registered")
		return
	}
	cp.DrawSpace(w.space, &engineDrawer{out: w.drawer})
}
