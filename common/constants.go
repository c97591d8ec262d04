package common

const (
	BaseWidth  = 300
	BaseHeight = 300

	// PixelsPerMeter is the default scale between screen pixels and physics meters.
	PixelsPerMeter = 30.0
	Gravity        = 9.8

	VelocityIterations = 3
	PositionIterations = 2

	// MaxStep bounds a single frame's dt in seconds.
	MaxStep = 0.25
)
