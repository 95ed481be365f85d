// Package capture records a gamepad into a macro file.
package capture

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/hidmacro/internal/application/record"
	"github.com/younwookim/hidmacro/internal/application/scene"
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/infrastructure/config"
)

var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorRecording = color.RGBA{200, 50, 50, 255}
	colorIdle      = color.RGBA{60, 60, 60, 255}
)

// ActionSource yields the action currently held on the controller
type ActionSource interface {
	Action() macro.Action
}

// Options names the file a capture is saved to
type Options struct {
	Path        string
	Name        string
	LoopAnchor  int
	Description string
}

// Capture samples input once per tick while recording
type Capture struct {
	input   ActionSource
	builder *record.Builder
	opts    Options
	screenW int
	screenH int

	recording bool
	current   macro.Action
	saved     int
	lastErr   error
}

// New creates a capture scene writing to opts.Path
func New(input ActionSource, builder *record.Builder, opts Options, screenW, screenH int) *Capture {
	return &Capture{
		input:   input,
		builder: builder,
		opts:    opts,
		screenW: screenW,
		screenH: screenH,
		current: macro.ActionNothing,
	}
}

// Update handles hotkeys and samples input (implements scene.Scene)
func (c *Capture) Update(_ float64) (scene.Scene, error) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return nil, scene.ErrQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		c.Start()
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		c.Stop()
	}

	c.Sample()
	return nil, nil
}

// Start discards any previous take and begins recording
func (c *Capture) Start() {
	c.builder.Reset()
	c.recording = true
	c.lastErr = nil
	log.Printf("Recording started")
}

// Stop ends the take and saves it
func (c *Capture) Stop() {
	if !c.recording {
		return
	}
	c.recording = false
	c.lastErr = c.Save()
	if c.lastErr != nil {
		log.Printf("Failed to save macro: %v", c.lastErr)
	}
}

// Sample reads one tick of input
func (c *Capture) Sample() {
	c.current = c.input.Action()
	if c.recording {
		c.builder.Add(c.current)
	}
}

// Save writes the recorded timeline to opts.Path
func (c *Capture) Save() error {
	tl, err := c.builder.Timeline(c.opts.Name, c.opts.LoopAnchor)
	if err != nil {
		return fmt.Errorf("invalid recording: %w", err)
	}
	if err := config.WriteMacro(c.opts.Path, tl, c.opts.Description); err != nil {
		return err
	}
	c.saved++
	log.Printf("Macro saved to: %s (%d steps, %d ticks)", c.opts.Path, tl.Len(), c.builder.Ticks())
	return nil
}

// Recording reports whether a take is in progress
func (c *Capture) Recording() bool {
	return c.recording
}

// Saved returns how many takes were written
func (c *Capture) Saved() int {
	return c.saved
}

// Err returns the error from the last save
func (c *Capture) Err() error {
	return c.lastErr
}

// Draw renders the capture status (implements scene.Scene)
func (c *Capture) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	lamp := colorIdle
	label := "IDLE"
	if c.recording {
		lamp = colorRecording
		label = "REC"
	}
	ebitenutil.DrawRect(screen, 10, 10, 12, 12, lamp)
	ebitenutil.DebugPrintAt(screen, label, 28, 8)

	info := fmt.Sprintf("Input: %s\nSteps: %d\nTicks: %d\nOutput: %s",
		c.current, len(c.builder.Steps()), c.builder.Ticks(), c.opts.Path)
	ebitenutil.DebugPrintAt(screen, info, 10, 32)

	if c.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, c.lastErr.Error(), 10, c.screenH-36)
	}
	ebitenutil.DebugPrintAt(screen, "F1: Record | F2: Stop & Save | ESC: Quit", 10, c.screenH-18)
}

// OnEnter is called when entering the scene
func (c *Capture) OnEnter() {}

// OnExit saves a take still in progress
func (c *Capture) OnExit() {
	c.Stop()
}
