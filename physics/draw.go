package physics

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

// Drawer receives the debug-draw pass in world units.
type Drawer interface {
	DrawPolygon(verts []Vec2, c color.Color)
	DrawCircle(center Vec2, radius, angle float64, c color.Color)
	DrawSegment(a, b Vec2, c color.Color)
	DrawPoint(p Vec2, size float64, c color.Color)
}

var (
	StaticColor  color.Color = colornames.Lightskyblue
	DynamicColor color.Color = colornames.Violet
	ContactColor color.Color = colornames.Red
)

// engineDrawer adapts Chipmunk's draw callbacks to Drawer.
type engineDrawer struct {
	out Drawer
}

func (d *engineDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.out.DrawCircle(fromCP(pos), radius, angle, toNRGBA(fill))
}

func (d *engineDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.out.DrawSegment(fromCP(a), fromCP(b), toNRGBA(fill))
}

func (d *engineDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := toNRGBA(fill)
	d.out.DrawSegment(fromCP(a), fromCP(b), c)
	if radius > 0 {
		d.out.DrawCircle(fromCP(a), radius, 0, c)
		d.out.DrawCircle(fromCP(b), radius, 0, c)
	}
}

func (d *engineDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	out := make([]Vec2, count)
	for i := 0; i < count; i++ {
		out[i] = fromCP(verts[i])
	}
	d.out.DrawPolygon(out, toNRGBA(fill))
}

func (d *engineDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	d.out.DrawPoint(fromCP(pos), size, toNRGBA(fill))
}

func (d *engineDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *engineDrawer) OutlineColor() cp.FColor {
	return toFColor(colornames.Lime)
}

func (d *engineDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return toFColor(StaticColor)
	}
	return toFColor(DynamicColor)
}

func (d *engineDrawer) ConstraintColor() cp.FColor {
	return toFColor(colornames.Orange)
}

func (d *engineDrawer) CollisionPointColor() cp.FColor {
	return toFColor(ContactColor)
}

func (d *engineDrawer) Data() interface{} {
	return nil
}

func toFColor(c color.Color) cp.FColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return cp.FColor{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
