package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/milk9111/rigidbodies/debugdraw"
	"github.com/milk9111/rigidbodies/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingSurface struct {
	frames []debugdraw.Frame
}

func (s *recordingSurface) Present(f debugdraw.Frame) {
	s.frames = append(s.frames, f)
}

func float64Ptr(f float64) *float64 {
	return &f
}

func demoScene(t *testing.T) scenes.Scene {
	t.Helper()
	data, err := scenes.ScenesFS.ReadFile(scenes.DefaultScene)
	require.NoError(t, err)
	scene, err := scenes.ParseScene(data)
	require.NoError(t, err)
	return scene
}

func dropScene() scenes.Scene {
	return scenes.Scene{
		Name: "drop",
		Bodies: []scenes.BodySpec{
			{Name: "ground", Type: scenes.BodyStatic, X: 150, Y: 270, Shape: scenes.ShapeSpec{Kind: scenes.ShapeBox, HalfWidth: 130, HalfHeight: 20}},
			{Name: "circle", Type: scenes.BodyDynamic, X: 200, Y: 50, Shape: scenes.ShapeSpec{Kind: scenes.ShapeCircle, Radius: 20}, Density: 1, Restitution: float64Ptr(0.5)},
		},
	}
}

func staticLoader(scene scenes.Scene) Loader {
	return func(ctx context.Context) (scenes.Scene, error) {
		return scene, nil
	}
}

func readySession(t *testing.T, scene scenes.Scene) (*Session, *fakeClock, *recordingSurface) {
	t.Helper()
	clock := newFakeClock()
	surface := &recordingSurface{}
	s := New(staticLoader(scene), clock, surface)
	require.NoError(t, s.Init(context.Background()))
	require.Equal(t, Ready, s.State())
	return s, clock, surface
}

func TestTickBeforeWorldIsNoop(t *testing.T) {
	surface := &recordingSurface{}
	s := New(staticLoader(dropScene()), newFakeClock(), surface)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Tick())
	}
	assert.Equal(t, Uninitialized, s.State())
	assert.Nil(t, s.World())
	assert.Empty(t, surface.frames)
	assert.Equal(t, Stats{}, s.Stats())
}

func TestTickWhileLoadingIsNoop(t *testing.T) {
	gate := make(chan struct{})
	loader := func(ctx context.Context) (scenes.Scene, error) {
		<-gate
		return dropScene(), nil
	}
	surface := &recordingSurface{}
	s := New(loader, newFakeClock(), surface)

	s.Start(context.Background())
	assert.Equal(t, Loading, s.State())
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Tick())
	}
	assert.Empty(t, surface.frames)
	assert.Equal(t, 0, s.Stats().Ticks)

	close(gate)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Await(ctx))
	assert.Equal(t, Ready, s.State())
	assert.Equal(t, 2, s.World().BodyCount())
}

func TestTickPollsFinishedLoad(t *testing.T) {
	clock := newFakeClock()
	surface := &recordingSurface{}
	s := New(staticLoader(dropScene()), clock, surface)
	s.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for s.State() != Ready && time.Now().Before(deadline) {
		require.NoError(t, s.Tick())
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, Ready, s.State())
	assert.Len(t, surface.frames, s.Stats().Ticks)
}

func TestEachTickStepsOnceWithFixedIterations(t *testing.T) {
	s, clock, surface := readySession(t, demoScene(t))

	for i := 1; i <= 10; i++ {
		clock.Advance(16 * time.Millisecond)
		require.NoError(t, s.Tick())

		st := s.Stats()
		assert.Equal(t, i, st.Ticks)
		assert.Equal(t, i, st.StepCalls)
		ws := s.World().Stats()
		assert.Equal(t, 3, ws.VelocityIterations)
		assert.Equal(t, 2, ws.PositionIterations)

		assert.Len(t, surface.frames, i)
		assert.Equal(t, 0, s.Adapter().Len(), "primitives must not outlive the tick")
		assert.Equal(t, i, s.Adapter().Clears())
	}
}

func TestDtIsClockDelta(t *testing.T) {
	s, clock, _ := readySession(t, dropScene())

	clock.Advance(20 * time.Millisecond)
	require.NoError(t, s.Tick())
	assert.InDelta(t, 0.020, s.Dt(), 1e-9, "first tick measures from world creation")

	clock.Advance(16 * time.Millisecond)
	require.NoError(t, s.Tick())
	assert.InDelta(t, 0.016, s.Dt(), 1e-9)

	require.NoError(t, s.Tick())
	assert.Equal(t, 0.0, s.Dt())
	assert.Equal(t, 0, s.Stats().ClampedTicks)
}

func TestNonMonotonicClockIsClamped(t *testing.T) {
	s, clock, _ := readySession(t, dropScene())
	circle, ok := s.World().BodyByName("circle")
	require.True(t, ok)

	clock.Advance(16 * time.Millisecond)
	require.NoError(t, s.Tick())
	before := circle.Position()

	clock.Advance(-time.Second)
	require.NoError(t, s.Tick())
	assert.Equal(t, 0.0, s.Dt())
	assert.Equal(t, before, circle.Position())
	assert.Equal(t, 1, s.Stats().ClampedTicks)
	assert.Equal(t, 2, s.Stats().StepCalls)

	clock.Advance(10 * time.Second)
	require.NoError(t, s.Tick())
	assert.Equal(t, 0.25, s.Dt())
	assert.Equal(t, 2, s.Stats().ClampedTicks)
}

func TestLoadFailureIsFatal(t *testing.T) {
	boom := errors.New("module missing")
	s := New(func(ctx context.Context) (scenes.Scene, error) {
		return scenes.Scene{}, boom
	}, newFakeClock(), nil)

	err := s.Init(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Failed, s.State())
	assert.ErrorIs(t, s.Tick(), boom)
	assert.ErrorIs(t, s.Err(), boom)
}

func TestNilLoader(t *testing.T) {
	s := New(nil, nil, nil)
	assert.ErrorIs(t, s.Init(context.Background()), ErrNoLoader)
}

func TestInvalidSceneFailsAtBuild(t *testing.T) {
	scene := dropScene()
	scene.Bodies[1].Shape.Radius = 0
	s := New(staticLoader(scene), newFakeClock(), nil)

	err := s.Init(context.Background())
	require.Error(t, err)
	var cfgErr *scenes.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, Failed, s.State())
}

func TestAwaitHonorsContext(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	s := New(func(ctx context.Context) (scenes.Scene, error) {
		<-gate
		return dropScene(), nil
	}, newFakeClock(), nil)
	s.Start(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Await(ctx), context.Canceled)
	assert.Equal(t, Loading, s.State())
}

func TestResetRebuildsWorld(t *testing.T) {
	s, clock, _ := readySession(t, dropScene())
	first := s.World()

	clock.Advance(time.Second / 60)
	require.NoError(t, s.Tick())

	s.Reset(context.Background())
	assert.Same(t, first, s.World(), "old world stays live until the new one is built")
	assert.True(t, s.Reloading())
	require.NoError(t, s.Await(context.Background()))
	assert.False(t, s.Reloading())
	assert.Equal(t, Ready, s.State())
	assert.NotSame(t, first, s.World())
	assert.Equal(t, 1, s.Stats().Resets)

	circle, ok := s.World().BodyByName("circle")
	require.True(t, ok)
	assert.InDelta(t, 50.0/30.0, circle.Position().Y, 1e-9)
}

func TestPresentedFrameMatchesScene(t *testing.T) {
	s, clock, surface := readySession(t, demoScene(t))
	clock.Advance(time.Second / 60)
	require.NoError(t, s.Tick())

	require.Len(t, surface.frames, 1)
	counts := map[debugdraw.PrimitiveKind]int{}
	for _, p := range surface.frames[0] {
		counts[p.Kind]++
	}
	assert.Equal(t, 3, counts[debugdraw.KindPolygon])
	assert.Equal(t, 1, counts[debugdraw.KindCircle])

	for _, p := range surface.frames[0] {
		if p.Kind == debugdraw.KindCircle {
			assert.InDelta(t, 200.0, p.Points[0].X, 0.5)
			assert.InDelta(t, 50.0, p.Points[0].Y, 0.5)
			assert.InDelta(t, 20.0, p.Radius, 1e-9)
		}
	}
}

func TestFailedReloadKeepsWorld(t *testing.T) {
	broken := errors.New("yaml: line 3: did not find expected key")
	calls := 0
	clock := newFakeClock()
	surface := &recordingSurface{}
	s := New(func(ctx context.Context) (scenes.Scene, error) {
		calls++
		if calls > 1 {
			return scenes.Scene{}, broken
		}
		return dropScene(), nil
	}, clock, surface)
	require.NoError(t, s.Init(context.Background()))
	first := s.World()

	s.Reset(context.Background())
	assert.ErrorIs(t, s.Await(context.Background()), broken)
	assert.Equal(t, Ready, s.State())
	assert.Same(t, first, s.World())
	assert.NoError(t, s.Err())
	assert.Equal(t, 1, s.Stats().FailedReloads)

	clock.Advance(time.Second / 60)
	require.NoError(t, s.Tick())
	assert.Len(t, surface.frames, 1)
	assert.Equal(t, 1, s.Stats().StepCalls)
}

func TestInvalidReloadKeepsWorld(t *testing.T) {
	scene := dropScene()
	calls := 0
	s := New(func(ctx context.Context) (scenes.Scene, error) {
		calls++
		if calls > 1 {
			scene.Bodies[1].Shape.Radius = -1
		}
		return scene, nil
	}, newFakeClock(), nil)
	require.NoError(t, s.Init(context.Background()))
	first := s.World()

	s.Reset(context.Background())
	var cfgErr *scenes.ConfigError
	assert.ErrorAs(t, s.Await(context.Background()), &cfgErr)
	assert.Equal(t, Ready, s.State())
	assert.Same(t, first, s.World())
	assert.NoError(t, s.Tick())
}

func TestResetAfterFailureRetries(t *testing.T) {
	calls := 0
	s := New(func(ctx context.Context) (scenes.Scene, error) {
		calls++
		if calls == 1 {
			return scenes.Scene{}, errors.New("not yet")
		}
		return dropScene(), nil
	}, newFakeClock(), nil)
	require.Error(t, s.Init(context.Background()))
	require.Equal(t, Failed, s.State())

	s.Reset(context.Background())
	require.NoError(t, s.Await(context.Background()))
	assert.Equal(t, Ready, s.State())
	assert.NoError(t, s.Err())
}

func TestRebaseSkipsPausedTime(t *testing.T) {
	s, clock, _ := readySession(t, dropScene())
	clock.Advance(time.Second / 60)
	require.NoError(t, s.Tick())

	clock.Advance(5 * time.Second)
	s.Rebase()
	clock.Advance(10 * time.Millisecond)
	require.NoError(t, s.Tick())
	assert.InDelta(t, 0.010, s.Dt(), 1e-9)
	assert.Equal(t, 0, s.Stats().ClampedTicks)
}

func TestCircleBounceScalesWithRestitution(t *testing.T) {
	cases := []struct {
		name        string
		restitution *float64
		want        float64
	}{
		{"half", float64Ptr(0.5), 0.5},
		{"inelastic", nil, 0},
	}

	// Speeds are compared across the impact tick, so the tolerance only
	// covers solver round-off.
	const tolerance = 0.02
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scene := dropScene()
			scene.Bodies[1].Restitution = c.restitution
			s, clock, _ := readySession(t, scene)
			circle, ok := s.World().BodyByName("circle")
			require.True(t, ok)

			lastY := circle.Position().Y
			impact, after := 0.0, 0.0
			for i := 0; i < 240; i++ {
				clock.Advance(time.Second / 60)
				require.NoError(t, s.Tick())

				vy := circle.LinearVelocity().Y
				if vy < impact {
					after = vy
					break
				}
				require.GreaterOrEqual(t, circle.Position().Y, lastY, "circle must fall before contact")
				lastY = circle.Position().Y
				impact = vy
			}

			require.Greater(t, impact, 1.0, "circle never reached the ground")
			assert.InDelta(t, c.want, -after/impact, tolerance)
		})
	}
}

func TestCollidingBodiesBounceWithLargerRestitution(t *testing.T) {
	data, err := scenes.ScenesFS.ReadFile("collide.yaml")
	require.NoError(t, err)
	scene, err := scenes.ParseScene(data)
	require.NoError(t, err)

	s, clock, _ := readySession(t, scene)
	box, ok := s.World().BodyByName("box")
	require.True(t, ok)
	circle, ok := s.World().BodyByName("circle")
	require.True(t, ok)
	assert.InDelta(t, 5.0, box.LinearVelocity().X, 1e-9)

	for i := 0; i < 120; i++ {
		clock.Advance(time.Second / 60)
		require.NoError(t, s.Tick())
	}

	const u, e = 5.0, 0.5
	m1, m2 := box.Mass(), circle.Mass()
	assert.InDelta(t, u*(m1-e*m2)/(m1+m2), box.LinearVelocity().X, 0.02)
	assert.InDelta(t, u*m1*(1+e)/(m1+m2), circle.LinearVelocity().X, 0.02)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "State(9)", State(9).String())
}
