// Package session builds the physics world from a scene and drives it once per
// rendered frame.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/milk9111/rigidbodies/common"
	"github.com/milk9111/rigidbodies/debugdraw"
	"github.com/milk9111/rigidbodies/physics"
	"github.com/milk9111/rigidbodies/scenes"
)

// State tags whether the session has a world to step.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrNoLoader = errors.New("session: no scene loader")

// Loader produces the scene the session builds.
type Loader func(ctx context.Context) (scenes.Scene, error)

// SceneLoader loads a named scene through the scenes package.
func SceneLoader(name string) Loader {
	return func(ctx context.Context) (scenes.Scene, error) {
		if err := ctx.Err(); err != nil {
			return scenes.Scene{}, err
		}
		return scenes.LoadScene(name)
	}
}

// Stats summarizes what the frame driver has done.
type Stats struct {
	Ticks        int
	StepCalls    int
	Steps        int
	ClampedTicks int
	Resets       int
	// FailedReloads counts resets whose load failed while a world was live.
	FailedReloads int
	LastDt        float64
	Bodies        int
}

type loadResult struct {
	scene     scenes.Scene
	world     *physics.World
	adapter   *debugdraw.Adapter
	createdAt time.Time
	err       error
}

// Session owns the world, the debug-draw adapter and the frame timing state.
// All methods except the loader goroutine run on the render loop.
type Session struct {
	loader  Loader
	clock   Clock
	surface debugdraw.Surface

	state   State
	err     error
	pending chan loadResult

	scene   scenes.Scene
	world   *physics.World
	adapter *debugdraw.Adapter

	lastTime time.Time
	dt       float64
	stats    Stats
}

// New returns an uninitialized session. A nil clock selects SystemClock.
func New(loader Loader, clock Clock, surface debugdraw.Surface) *Session {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Session{loader: loader, clock: clock, surface: surface}
}

func (s *Session) State() State { return s.state }

// Err is the load error once the session has failed.
func (s *Session) Err() error { return s.err }

func (s *Session) World() *physics.World { return s.world }

func (s *Session) Adapter() *debugdraw.Adapter { return s.adapter }

func (s *Session) Scene() scenes.Scene { return s.scene }

func (s *Session) Dt() float64 { return s.dt }

func (s *Session) Stats() Stats {
	st := s.stats
	if s.world != nil {
		st.StepCalls = s.world.Stats().Calls
		st.Steps = s.world.Stats().Steps
		st.Bodies = s.world.BodyCount()
	}
	return st
}

// Start begins loading and building the world on a goroutine. Until it
// finishes, Tick is a no-op.
func (s *Session) Start(ctx context.Context) {
	if s.state == Loading || s.state == Ready {
		return
	}
	s.state = Loading
	s.err = nil
	s.spawn(ctx)
}

func (s *Session) spawn(ctx context.Context) {
	ch := make(chan loadResult, 1)
	s.pending = ch
	go func() {
		ch <- s.load(ctx)
	}()
}

// Reloading reports whether a reset is in flight while the old world keeps
// running.
func (s *Session) Reloading() bool {
	return s.state == Ready && s.pending != nil
}

// Await blocks until the pending load finishes and installs its result. A
// failed reload returns its error but leaves the session Ready.
func (s *Session) Await(ctx context.Context) error {
	if s.pending == nil {
		return s.err
	}
	select {
	case r := <-s.pending:
		return s.install(r)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Init loads and builds the world synchronously.
func (s *Session) Init(ctx context.Context) error {
	s.Start(ctx)
	return s.Await(ctx)
}

// Reset loads the scene again. A live world keeps ticking until the new one
// is built and is kept if the reload fails. Without a live world Reset
// starts over like Start.
func (s *Session) Reset(ctx context.Context) {
	log.Printf("session: reset (state=%s)", s.state)
	s.stats.Resets++
	if s.state == Ready {
		s.spawn(ctx)
		return
	}
	s.state = Uninitialized
	s.Start(ctx)
}

// Rebase restarts frame timing from now, so time spent outside Tick (a pause)
// is not simulated.
func (s *Session) Rebase() {
	if s.state != Ready {
		return
	}
	s.lastTime = s.clock.Now()
	s.dt = 0
}

func (s *Session) load(ctx context.Context) loadResult {
	if s.loader == nil {
		return loadResult{err: ErrNoLoader}
	}
	scene, err := s.loader(ctx)
	if err != nil {
		return loadResult{err: fmt.Errorf("session: load scene: %w", err)}
	}
	world, err := Build(scene)
	if err != nil {
		return loadResult{err: err}
	}
	scene.Bodies = append([]scenes.BodySpec(nil), scene.Bodies...)
	scene.ApplyDefaults()
	adapter := debugdraw.NewAdapter(scene.World.PixelsPerMeter)
	world.SetDebugDraw(adapter)
	return loadResult{scene: scene, world: world, adapter: adapter, createdAt: s.clock.Now()}
}

func (s *Session) install(r loadResult) error {
	s.pending = nil
	if r.err != nil {
		if s.state == Ready {
			s.stats.FailedReloads++
			log.Printf("session: reload failed, keeping current world: %v", r.err)
			return r.err
		}
		s.state = Failed
		s.err = r.err
		log.Printf("session: load failed: %v", r.err)
		return r.err
	}
	s.scene = r.scene
	s.world = r.world
	s.adapter = r.adapter
	s.lastTime = r.createdAt
	s.dt = 0
	s.state = Ready
	return nil
}

func (s *Session) poll() {
	if s.pending == nil {
		return
	}
	select {
	case r := <-s.pending:
		_ = s.install(r)
	default:
	}
}

// Tick advances the world by the wall-clock time since the previous tick,
// runs the debug-draw pass, presents it and clears the adapter. It is a no-op
// until the world exists and returns the load error if loading failed.
func (s *Session) Tick() error {
	s.poll()
	switch s.state {
	case Ready:
	case Failed:
		return s.err
	default:
		return nil
	}

	now := s.clock.Now()
	raw := now.Sub(s.lastTime).Seconds()
	s.lastTime = now

	dt := common.Clamp(raw, 0, s.scene.World.MaxStep)
	if dt != raw {
		s.stats.ClampedTicks++
		if raw < 0 {
			log.Printf("session: clock went backwards by %v, skipping step", -raw)
		}
	}
	s.dt = dt
	s.stats.LastDt = dt

	s.world.Step(dt, s.scene.World.VelocityIterations, s.scene.World.PositionIterations)
	s.world.DebugDraw()
	if s.surface != nil {
		s.surface.Present(s.adapter.Frame())
	}
	s.adapter.Clear()
	s.stats.Ticks++
	return nil
}
