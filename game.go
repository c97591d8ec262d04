package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/rigidbodies/common"
	"github.com/milk9111/rigidbodies/debugdraw"
	"github.com/milk9111/rigidbodies/obj"
	"github.com/milk9111/rigidbodies/scenes"
	"github.com/milk9111/rigidbodies/session"
)

var background = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

type Game struct {
	frames int
	debug  bool
	paused bool
	done   bool

	ctx       context.Context
	sceneName string

	input    *obj.Input
	session  *session.Session
	canvas   *debugdraw.Canvas
	pauseUI  *ebitenui.UI
	reloader *sceneReloader
}

// NewGame starts loading the scene in the background; Update steps nothing
// until the world is ready.
func NewGame(ctx context.Context, sceneName string, debug bool, watcher *scenes.Watcher) *Game {
	canvas := debugdraw.NewCanvas()
	g := &Game{
		debug:     debug,
		ctx:       ctx,
		sceneName: sceneName,
		input:     obj.NewInput(),
		canvas:    canvas,
		session:   session.New(session.SceneLoader(sceneName), session.SystemClock{}, canvas),
	}
	g.pauseUI = NewPauseUI(g)
	g.reloader = newSceneReloader(watcher, sceneName, func() { g.session.Reset(g.ctx) })
	g.session.Start(ctx)
	return g
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()
	if g.input.QuitPressed {
		g.quit()
	}
	if g.done {
		return ebiten.Termination
	}
	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.input.PausePressed {
		if g.paused {
			g.resume()
		} else {
			g.paused = true
		}
	}
	if g.input.ResetPressed {
		g.reset()
	}
	g.reloader.drain()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if err := g.session.Tick(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.canvas.Draw(screen)

	if g.debug {
		st := g.session.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f\nstate: %s  bodies: %d\nsteps: %d  dt: %.4f  clamped: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.session.State(), st.Bodies, st.Steps, st.LastDt, st.ClampedTicks))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) resume() {
	g.paused = false
	g.session.Rebase()
}

func (g *Game) reset() {
	g.session.Reset(g.ctx)
	g.resume()
}

func (g *Game) quit() {
	g.done = true
}
