// Package preview draws the controller while a macro plays, without any
// USB hardware attached.
package preview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/hidmacro/internal/application/playback"
	"github.com/younwookim/hidmacro/internal/application/scene"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorPad      = color.RGBA{60, 60, 80, 255}
	colorStick    = color.RGBA{100, 200, 100, 255}
	colorHat      = color.RGBA{255, 215, 0, 255}
	colorLampOff  = color.RGBA{60, 60, 60, 255}
	colorLampOn   = color.RGBA{255, 100, 100, 255}
	colorPausedBG = color.RGBA{0, 0, 0, 128}
)

const (
	stickBox  = 48.0
	stickDot  = 6.0
	lampSize  = 10.0
	lampGap   = 4.0
	hatCell   = 10.0
	hatMargin = 8.0
)

// Preview polls the engine once per tick and draws the resulting report
type Preview struct {
	engine  *playback.Engine
	screenW int
	screenH int

	last   report.InputReport
	paused bool
}

// New creates a preview of engine
func New(engine *playback.Engine, screenW, screenH int) *Preview {
	return &Preview{
		engine:  engine,
		screenW: screenW,
		screenH: screenH,
		last:    report.Neutral(),
	}
}

// Update polls the engine (implements scene.Scene)
func (p *Preview) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return nil, scene.ErrQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.paused = !p.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.engine.RequestReset()
	}

	p.Step()
	return nil, nil
}

// Step polls once unless paused
func (p *Preview) Step() {
	if p.paused {
		return
	}
	p.last = p.engine.Poll()
}

// Last returns the most recently drawn report
func (p *Preview) Last() report.InputReport {
	return p.last
}

// Paused reports whether polling is suspended
func (p *Preview) Paused() bool {
	return p.paused
}

// Draw renders the pad (implements scene.Scene)
func (p *Preview) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	top := 40.0
	p.drawStick(screen, 20, top, p.last.LX, p.last.LY)
	p.drawStick(screen, float64(p.screenW)-20-stickBox, top, p.last.RX, p.last.RY)
	p.drawHat(screen, 20+stickBox+hatMargin, top)
	p.drawLamps(screen, 20, top+stickBox+16)

	c := p.engine.Cursor()
	status := fmt.Sprintf("%s  step %d/%d  tick %d",
		c.State, c.Index, p.engine.Timeline().Len(), c.Elapsed)
	ebitenutil.DebugPrintAt(screen, p.engine.Timeline().Name(), 10, 4)
	ebitenutil.DebugPrintAt(screen, status, 10, 18)
	ebitenutil.DebugPrintAt(screen, "SPACE: Pause | R: Restart | ESC: Quit", 10, p.screenH-18)

	if p.paused {
		ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorPausedBG)
		ebitenutil.DebugPrintAt(screen, "PAUSED", p.screenW/2-18, p.screenH/2-8)
	}
}

func (p *Preview) drawStick(screen *ebiten.Image, x, y float64, vx, vy uint8) {
	ebitenutil.DrawRect(screen, x, y, stickBox, stickBox, colorPad)
	dx := StickOffset(vx, stickBox-stickDot)
	dy := StickOffset(vy, stickBox-stickDot)
	ebitenutil.DrawRect(screen, x+dx, y+dy, stickDot, stickDot, colorStick)
}

func (p *Preview) drawHat(screen *ebiten.Image, x, y float64) {
	ebitenutil.DrawRect(screen, x, y, hatCell*3, hatCell*3, colorPad)
	col, row, ok := HatCell(p.last.Hat)
	if !ok {
		return
	}
	ebitenutil.DrawRect(screen, x+float64(col)*hatCell, y+float64(row)*hatCell, hatCell, hatCell, colorHat)
}

func (p *Preview) drawLamps(screen *ebiten.Image, x, y float64) {
	for i, b := range report.AllButtons {
		c := colorLampOff
		if p.last.Buttons.Has(b) {
			c = colorLampOn
		}
		lx := x + float64(i%7)*(lampSize+lampGap)*3
		ly := y + float64(i/7)*(lampSize+lampGap+12)
		ebitenutil.DrawRect(screen, lx, ly, lampSize, lampSize, c)
		ebitenutil.DebugPrintAt(screen, b.String(), int(lx), int(ly+lampSize))
	}
}

// OnEnter is called when entering the scene
func (p *Preview) OnEnter() {}

// OnExit is called when leaving the scene
func (p *Preview) OnExit() {}

// StickOffset maps an axis value onto [0, span]
func StickOffset(v uint8, span float64) float64 {
	return float64(v) / float64(report.StickMax) * span
}

// HatCell returns the 3x3 grid cell lit for h. ok is false when centered.
func HatCell(h report.Hat) (col, row int, ok bool) {
	switch h {
	case report.HatTop:
		return 1, 0, true
	case report.HatTopRight:
		return 2, 0, true
	case report.HatRight:
		return 2, 1, true
	case report.HatBottomRight:
		return 2, 2, true
	case report.HatBottom:
		return 1, 2, true
	case report.HatBottomLeft:
		return 0, 2, true
	case report.HatLeft:
		return 0, 1, true
	case report.HatTopLeft:
		return 0, 0, true
	default:
		return 1, 1, false
	}
}
