package scenes

import (
	"fmt"

	"github.com/milk9111/rigidbodies/common"
	"gopkg.in/yaml.v3"
)

const (
	BodyStatic  = "static"
	BodyDynamic = "dynamic"

	ShapeBox    = "box"
	ShapeCircle = "circle"
)

// Scene is a world and the bodies placed in it. Positions and dimensions are
// in pixels, angles in degrees.
type Scene struct {
	Name   string     `yaml:"name"`
	World  WorldSpec  `yaml:"world"`
	Bodies []BodySpec `yaml:"bodies"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type WorldSpec struct {
	Gravity            *VectorSpec `yaml:"gravity"`
	PixelsPerMeter     float64     `yaml:"pixels_per_meter"`
	VelocityIterations int         `yaml:"velocity_iterations"`
	PositionIterations int         `yaml:"position_iterations"`
	// MaxStep caps a frame's dt in seconds.
	MaxStep float64 `yaml:"max_step"`
}

type ShapeSpec struct {
	Kind       string  `yaml:"kind"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Radius     float64 `yaml:"radius"`
}

type BodySpec struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	X           float64   `yaml:"x"`
	Y           float64   `yaml:"y"`
	Angle       float64   `yaml:"angle"`
	Shape       ShapeSpec `yaml:"shape"`
	Density     float64   `yaml:"density"`
	Friction    *float64  `yaml:"friction"`
	Restitution *float64  `yaml:"restitution"`
	// Velocity is the initial linear velocity of a dynamic body in pixels per
	// second.
	Velocity *VectorSpec `yaml:"velocity"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenes: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenes: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScene reads, defaults and validates a scene.
func LoadScene(name string) (Scene, error) {
	scene, err := LoadSpec[Scene](name)
	if err != nil {
		return Scene{}, err
	}
	scene.ApplyDefaults()
	if err := scene.Validate(); err != nil {
		return Scene{}, fmt.Errorf("scenes: %s: %w", name, err)
	}
	return scene, nil
}

// ParseScene decodes a scene from YAML without touching the filesystem.
func ParseScene(data []byte) (Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return Scene{}, fmt.Errorf("scenes: unmarshal: %w", err)
	}
	scene.ApplyDefaults()
	if err := scene.Validate(); err != nil {
		return Scene{}, err
	}
	return scene, nil
}

// ApplyDefaults fills zero world settings with the demo values.
func (s *Scene) ApplyDefaults() {
	if s.World.Gravity == nil {
		s.World.Gravity = &VectorSpec{X: 0, Y: common.Gravity}
	}
	if s.World.PixelsPerMeter == 0 {
		s.World.PixelsPerMeter = common.PixelsPerMeter
	}
	if s.World.VelocityIterations == 0 {
		s.World.VelocityIterations = common.VelocityIterations
	}
	if s.World.PositionIterations == 0 {
		s.World.PositionIterations = common.PositionIterations
	}
	if s.World.MaxStep == 0 {
		s.World.MaxStep = common.MaxStep
	}
	for i := range s.Bodies {
		if s.Bodies[i].Type == "" {
			s.Bodies[i].Type = BodyStatic
		}
		if s.Bodies[i].Name == "" {
			s.Bodies[i].Name = fmt.Sprintf("body%d", i)
		}
	}
}
