// Command simulate steps a scene without a window and logs body positions in
// pixels.
package main

import (
	"context"
	"flag"
	"log"
	"sync"
	"time"

	"github.com/milk9111/rigidbodies/common"
	"github.com/milk9111/rigidbodies/debugdraw"
	"github.com/milk9111/rigidbodies/scenes"
	"github.com/milk9111/rigidbodies/session"
)

// manualClock only moves when the loop advances it.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// primitiveCounter is a debugdraw.Surface that only tallies frame sizes.
type primitiveCounter struct {
	frames     int
	primitives int
}

func (p *primitiveCounter) Present(f debugdraw.Frame) {
	p.frames++
	p.primitives += len(f)
}

func main() {
	sceneName := flag.String("scene", scenes.DefaultScene, "scene name in scenes/ (basename, .yaml optional) or a path")
	steps := flag.Int("steps", 180, "number of frames to simulate")
	fps := flag.Float64("fps", 60, "simulated frame rate")
	every := flag.Int("every", 30, "log body positions every N frames")
	flag.Parse()

	if *fps <= 0 || *steps < 0 {
		log.Fatalf("simulate: fps must be positive and steps non-negative")
	}
	if *every <= 0 {
		*every = 1
	}

	clock := &manualClock{now: time.Unix(0, 0)}
	surface := &primitiveCounter{}
	s := session.New(session.SceneLoader(*sceneName), clock, surface)
	if err := s.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	frame := time.Duration(float64(time.Second) / *fps)
	for i := 1; i <= *steps; i++ {
		clock.Advance(frame)
		if err := s.Tick(); err != nil {
			log.Fatal(err)
		}
		if i%*every == 0 || i == *steps {
			logBodies(s, i)
		}
	}

	st := s.Stats()
	log.Printf("simulate: %d frames, %d steps, %d primitives drawn, %d clamped", surface.frames, st.Steps, surface.primitives, st.ClampedTicks)
}

func logBodies(s *session.Session, frame int) {
	adapter := s.Adapter()
	for _, b := range s.World().Bodies() {
		px := adapter.ToPixels(b.Position())
		v := b.LinearVelocity()
		log.Printf("frame %4d  %-10s %-7s pos=(%7.2f, %7.2f) px  angle=%7.2f deg  vel=(%6.2f, %6.2f) m/s",
			frame, b.Name(), b.Type(), px.X, px.Y, common.RadToDeg(b.Angle()), v.X, v.Y)
	}
}
