// Package game hosts scenes on the ebiten loop.
package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/hidmacro/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	closed  bool
}

// New creates a host with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// scene.ErrQuit ends the loop with ebiten.Termination.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if errors.Is(err, scene.ErrQuit) {
		g.Close()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetTick matches the update rate to the poll period. ebiten runs Update
// TPS times per second, so one Update is one tick.
func (g *Game) SetTick(tick time.Duration) {
	g.dt = tick.Seconds()
	ebiten.SetTPS(TPS(tick))
}

// DT returns the delta time passed to scenes
func (g *Game) DT() float64 {
	return g.dt
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// Close exits the current scene once. Call it after ebiten.RunGame returns
// so a window closed by the user still runs OnExit.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.current.OnExit()
}

// TPS converts a tick period to ticks per second, at least 1
func TPS(tick time.Duration) int {
	if tick <= 0 {
		return ebiten.DefaultTPS
	}
	tps := int(time.Second / tick)
	if tps < 1 {
		return 1
	}
	return tps
}
