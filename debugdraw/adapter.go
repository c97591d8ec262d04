// Package debugdraw turns the physics debug-draw pass into pixel-space
// primitives and renders them with ebiten.
package debugdraw

import (
	"image/color"

	"github.com/milk9111/rigidbodies/physics"
)

type PrimitiveKind int

const (
	KindPolygon PrimitiveKind = iota
	KindCircle
	KindSegment
	KindPoint
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindCircle:
		return "circle"
	case KindSegment:
		return "segment"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Point is a position in screen pixels.
type Point struct {
	X, Y float64
}

// Primitive is one recorded draw call in pixels. Points holds the polygon
// vertices, the two segment ends, or the circle or point center.
type Primitive struct {
	Kind   PrimitiveKind
	Points []Point
	Radius float64
	Angle  float64
	Size   float64
	Color  color.Color
}

// Frame is the primitives of one debug-draw pass.
type Frame []Primitive

// Adapter implements physics.Drawer. Every coordinate and length is scaled by
// the pixels-per-meter factor before it is recorded.
type Adapter struct {
	scale  float64
	prims  Frame
	clears int
}

var _ physics.Drawer = (*Adapter)(nil)

func NewAdapter(pixelsPerMeter float64) *Adapter {
	return &Adapter{scale: pixelsPerMeter}
}

func (a *Adapter) Scale() float64 {
	return a.scale
}

func (a *Adapter) ToPixels(v physics.Vec2) Point {
	return Point{X: v.X * a.scale, Y: v.Y * a.scale}
}

func (a *Adapter) ToWorld(p Point) physics.Vec2 {
	return physics.Vec2{X: p.X / a.scale, Y: p.Y / a.scale}
}

func (a *Adapter) DrawPolygon(verts []physics.Vec2, c color.Color) {
	if len(verts) == 0 {
		return
	}
	pts := make([]Point, len(verts))
	for i, v := range verts {
		pts[i] = a.ToPixels(v)
	}
	a.prims = append(a.prims, Primitive{Kind: KindPolygon, Points: pts, Color: orWhite(c)})
}

func (a *Adapter) DrawCircle(center physics.Vec2, radius, angle float64, c color.Color) {
	if radius <= 0 {
		return
	}
	a.prims = append(a.prims, Primitive{
		Kind:   KindCircle,
		Points: []Point{a.ToPixels(center)},
		Radius: radius * a.scale,
		Angle:  angle,
		Color:  orWhite(c),
	})
}

func (a *Adapter) DrawSegment(p, q physics.Vec2, c color.Color) {
	a.prims = append(a.prims, Primitive{Kind: KindSegment, Points: []Point{a.ToPixels(p), a.ToPixels(q)}, Color: orWhite(c)})
}

// DrawPoint keeps size in pixels, the engine reports dot sizes in screen units.
func (a *Adapter) DrawPoint(p physics.Vec2, size float64, c color.Color) {
	a.prims = append(a.prims, Primitive{Kind: KindPoint, Points: []Point{a.ToPixels(p)}, Size: size, Color: orWhite(c)})
}

// Frame returns a copy of the primitives accumulated since the last Clear.
func (a *Adapter) Frame() Frame {
	out := make(Frame, len(a.prims))
	copy(out, a.prims)
	return out
}

func (a *Adapter) Len() int {
	return len(a.prims)
}

// Clear discards the accumulated primitives.
func (a *Adapter) Clear() {
	a.prims = a.prims[:0]
	a.clears++
}

// Clears counts Clear calls.
func (a *Adapter) Clears() int {
	return a.clears
}

func orWhite(c color.Color) color.Color {
	if c == nil {
		return color.White
	}
	return c
}
