package debugdraw

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	strokeWidth  = 1
	defaultPoint = 4
)

// Surface receives each presented debug frame.
type Surface interface {
	Present(Frame)
}

// Canvas keeps the last presented frame and strokes it onto the screen.
type Canvas struct {
	frame    Frame
	presents int
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) Present(f Frame) {
	c.frame = f
	c.presents++
}

// Frame returns the frame that Draw renders.
func (c *Canvas) Frame() Frame {
	return c.frame
}

func (c *Canvas) Presents() int {
	return c.presents
}

func (c *Canvas) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	for _, p := range c.frame {
		switch p.Kind {
		case KindPolygon:
			drawPolygon(screen, p.Points, p.Color)
		case KindCircle:
			if len(p.Points) == 0 {
				continue
			}
			ctr := p.Points[0]
			vector.StrokeCircle(screen, float32(ctr.X), float32(ctr.Y), float32(p.Radius), strokeWidth, p.Color, true)
			// angle indicator
			end := Point{X: ctr.X + math.Cos(p.Angle)*p.Radius, Y: ctr.Y + math.Sin(p.Angle)*p.Radius}
			drawLine(screen, ctr, end, p.Color)
		case KindSegment:
			if len(p.Points) < 2 {
				continue
			}
			drawLine(screen, p.Points[0], p.Points[1], p.Color)
		case KindPoint:
			if len(p.Points) == 0 {
				continue
			}
			size := p.Size
			if size <= 0 {
				size = defaultPoint
			}
			half := size / 2
			pos := p.Points[0]
			drawLine(screen, Point{X: pos.X - half, Y: pos.Y}, Point{X: pos.X + half, Y: pos.Y}, p.Color)
			drawLine(screen, Point{X: pos.X, Y: pos.Y - half}, Point{X: pos.X, Y: pos.Y + half}, p.Color)
		}
	}
}

func drawLine(screen *ebiten.Image, a, b Point, c color.Color) {
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), strokeWidth, c, true)
}

func drawPolygon(screen *ebiten.Image, pts []Point, c color.Color) {
	for i := range pts {
		drawLine(screen, pts[i], pts[(i+1)%len(pts)], c)
	}
}
