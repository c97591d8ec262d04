package physics

import "errors"

var (
	ErrInvalidShape    = errors.New("physics: invalid shape")
	ErrInvalidBodyDef  = errors.New("physics: invalid body definition")
	ErrInvalidMaterial = errors.New("physics: invalid material")
	ErrNilShape        = errors.New("physics: fixture has no shape")
)
