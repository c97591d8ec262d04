package debugdraw

import (
	"image/color"
	"testing"

	"github.com/milk9111/rigidbodies/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelRoundTrip(t *testing.T) {
	a := NewAdapter(30)

	world := a.ToWorld(Point{X: 100, Y: 30})
	assert.InDelta(t, 100.0/30.0, world.X, 1e-12)
	assert.InDelta(t, 1.0, world.Y, 1e-12)

	px := a.ToPixels(world)
	assert.InDelta(t, 100.0, px.X, 1e-9)
	assert.InDelta(t, 30.0, px.Y, 1e-9)
}

func TestAdapterScalesPrimitives(t *testing.T) {
	a := NewAdapter(30)
	red := color.NRGBA{R: 255, A: 255}

	a.DrawPolygon([]physics.Vec2{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}}, red)
	a.DrawCircle(physics.Vec2{X: 200.0 / 30, Y: 50.0 / 30}, 20.0/30, 0.5, red)
	a.DrawSegment(physics.Vec2{}, physics.Vec2{X: 1, Y: 0}, red)
	a.DrawPoint(physics.Vec2{X: 0.5, Y: 0.5}, 4, nil)
	a.DrawPolygon(nil, red)
	a.DrawCircle(physics.Vec2{}, 0, 0, red)

	f := a.Frame()
	require.Len(t, f, 4)

	assert.Equal(t, KindPolygon, f[0].Kind)
	assert.Equal(t, []Point{{30, 30}, {60, 30}, {60, 60}}, f[0].Points)

	assert.Equal(t, KindCircle, f[1].Kind)
	assert.InDelta(t, 200.0, f[1].Points[0].X, 1e-9)
	assert.InDelta(t, 50.0, f[1].Points[0].Y, 1e-9)
	assert.InDelta(t, 20.0, f[1].Radius, 1e-9)
	assert.Equal(t, 0.5, f[1].Angle)

	assert.Equal(t, KindSegment, f[2].Kind)
	assert.Equal(t, []Point{{0, 0}, {30, 0}}, f[2].Points)

	assert.Equal(t, KindPoint, f[3].Kind)
	assert.Equal(t, 4.0, f[3].Size)
	assert.Equal(t, color.White, f[3].Color)
}

func TestClearDiscardsPrimitives(t *testing.T) {
	a := NewAdapter(30)
	a.DrawSegment(physics.Vec2{}, physics.Vec2{X: 1}, color.White)
	snapshot := a.Frame()

	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Frame())
	assert.Equal(t, 1, a.Clears())

	a.DrawSegment(physics.Vec2{X: 2}, physics.Vec2{X: 3}, color.White)
	require.Len(t, snapshot, 1)
	assert.Equal(t, 30.0, snapshot[0].Points[1].X, "earlier frames must not alias the buffer")
}

func TestCanvasKeepsLastPresentedFrame(t *testing.T) {
	c := NewCanvas()
	assert.Empty(t, c.Frame())

	c.Present(Frame{{Kind: KindSegment}})
	c.Present(Frame{{Kind: KindCircle}, {Kind: KindPoint}})
	assert.Equal(t, 2, c.Presents())
	require.Len(t, c.Frame(), 2)
	assert.Equal(t, KindCircle, c.Frame()[0].Kind)
	c.Draw(nil)
}

func TestPrimitiveKindString(t *testing.T) {
	assert.Equal(t, "polygon", KindPolygon.String())
	assert.Equal(t, "point", KindPoint.String())
	assert.Equal(t, "unknown", PrimitiveKind(42).String())
}
