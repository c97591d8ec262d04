package session

import (
	"fmt"
	"log"

	"github.com/milk9111/rigidbodies/common"
	"github.com/milk9111/rigidbodies/physics"
	"github.com/milk9111/rigidbodies/scenes"
)

// Build creates a world from a scene. Pixel positions and dimensions are
// divided by the scene's pixels-per-meter, angles are converted from degrees.
func Build(scene scenes.Scene) (*physics.World, error) {
	scene.Bodies = append([]scenes.BodySpec(nil), scene.Bodies...)
	scene.ApplyDefaults()
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("session: build %q: %w", scene.Name, err)
	}

	ppm := scene.World.PixelsPerMeter
	world := physics.NewWorld(physics.WorldConfig{})
	world.SetGravity(physics.Vec2{X: scene.World.Gravity.X, Y: scene.World.Gravity.Y})

	for _, spec := range scene.Bodies {
		if err := addBody(world, spec, ppm); err != nil {
			return nil, fmt.Errorf("session: build %q: %w", scene.Name, err)
		}
	}

	log.Printf("session: built scene %q with %d bodies", scene.Name, world.BodyCount())
	return world, nil
}

func addBody(world *physics.World, spec scenes.BodySpec, ppm float64) error {
	kind := physics.StaticBody
	if spec.Type == scenes.BodyDynamic {
		kind = physics.DynamicBody
	}

	body, err := world.CreateBody(physics.BodyDef{
		Name:     spec.Name,
		Type:     kind,
		Position: physics.Vec2{X: spec.X, Y: spec.Y}.Scale(1 / ppm),
		Angle:    common.DegToRad(spec.Angle),
	})
	if err != nil {
		return err
	}

	fixture, err := body.CreateFixture(physics.FixtureDef{
		Shape:    toShape(spec.Shape, ppm),
		Density:  spec.Density,
		Friction: spec.Friction,
	})
	if err != nil {
		return err
	}
	if spec.Restitution != nil {
		fixture.SetRestitution(*spec.Restitution)
	}
	if v := spec.Velocity; v != nil && kind == physics.DynamicBody {
		body.SetLinearVelocity(physics.Vec2{X: v.X, Y: v.Y}.Scale(1 / ppm))
	}
	return nil
}

func toShape(spec scenes.ShapeSpec, ppm float64) physics.Shape {
	switch spec.Kind {
	case scenes.ShapeCircle:
		return physics.CircleShape{Radius: spec.Radius / ppm}
	default:
		return physics.BoxShape{HalfWidth: spec.HalfWidth / ppm, HalfHeight: spec.HalfHeight / ppm}
	}
}
