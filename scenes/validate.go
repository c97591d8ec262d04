package scenes

import (
	"errors"
	"fmt"

	"github.com/milk9111/rigidbodies/common"
)

// ConfigError reports one malformed field of a scene.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks every setting and body. All problems are returned joined.
func (s Scene) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	w := s.World
	if w.Gravity != nil && (!common.IsFinite(w.Gravity.X) || !common.IsFinite(w.Gravity.Y)) {
		add("world.gravity", "must be finite, got (%v, %v)", w.Gravity.X, w.Gravity.Y)
	}
	if !common.IsFinite(w.PixelsPerMeter) || w.PixelsPerMeter <= 0 {
		add("world.pixels_per_meter", "must be positive, got %v", w.PixelsPerMeter)
	}
	if w.VelocityIterations < 1 {
		add("world.velocity_iterations", "must be at least 1, got %d", w.VelocityIterations)
	}
	if w.PositionIterations < 1 {
		add("world.position_iterations", "must be at least 1, got %d", w.PositionIterations)
	}
	if !common.IsFinite(w.MaxStep) || w.MaxStep <= 0 {
		add("world.max_step", "must be positive, got %v", w.MaxStep)
	}

	for i, b := range s.Bodies {
		prefix := fmt.Sprintf("bodies[%d](%s)", i, b.Name)
		if b.Type != BodyStatic && b.Type != BodyDynamic {
			add(prefix+".type", "unknown body type %q", b.Type)
		}
		if !common.IsFinite(b.X) || !common.IsFinite(b.Y) {
			add(prefix+".position", "must be finite, got (%v, %v)", b.X, b.Y)
		}
		if !common.IsFinite(b.Angle) {
			add(prefix+".angle", "must be finite, got %v", b.Angle)
		}
		switch b.Shape.Kind {
		case ShapeBox:
			if !positive(b.Shape.HalfWidth) || !positive(b.Shape.HalfHeight) {
				add(prefix+".shape", "box half extents must be positive, got (%v, %v)", b.Shape.HalfWidth, b.Shape.HalfHeight)
			}
		case ShapeCircle:
			if !positive(b.Shape.Radius) {
				add(prefix+".shape", "circle radius must be positive, got %v", b.Shape.Radius)
			}
		default:
			add(prefix+".shape.kind", "unknown shape kind %q", b.Shape.Kind)
		}
		if !common.IsFinite(b.Density) || b.Density < 0 {
			add(prefix+".density", "must be non-negative, got %v", b.Density)
		}
		if b.Friction != nil && (!common.IsFinite(*b.Friction) || *b.Friction < 0) {
			add(prefix+".friction", "must be non-negative, got %v", *b.Friction)
		}
		if b.Restitution != nil && (!common.IsFinite(*b.Restitution) || *b.Restitution < 0 || *b.Restitution > 1) {
			add(prefix+".restitution", "must be within [0, 1], got %v", *b.Restitution)
		}
		if v := b.Velocity; v != nil {
			switch {
			case b.Type != BodyDynamic:
				add(prefix+".velocity", "only dynamic bodies can move")
			case !common.IsFinite(v.X) || !common.IsFinite(v.Y):
				add(prefix+".velocity", "must be finite, got (%v, %v)", v.X, v.Y)
			}
		}
	}

	return errors.Join(errs...)
}

func positive(v float64) bool {
	return common.IsFinite(v) && v > 0
}
