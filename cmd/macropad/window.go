package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/hidmacro/internal/application/game"
	"github.com/younwookim/hidmacro/internal/application/record"
	"github.com/younwookim/hidmacro/internal/application/scene"
	"github.com/younwookim/hidmacro/internal/application/scene/capture"
	"github.com/younwookim/hidmacro/internal/application/scene/preview"
	"github.com/younwookim/hidmacro/internal/application/system"
	"github.com/younwookim/hidmacro/internal/infrastructure/config"
)

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	macroName := fs.String("macro", "balloon", "Macro name or path to a .yaml file")
	configDir := fs.String("config", "", "Config directory (default: embedded)")
	_ = fs.Parse(args)

	dev, tl, err := setup(*configDir, *macroName)
	if err != nil {
		return err
	}

	engine, err := newEngine(dev, tl)
	if err != nil {
		return err
	}

	d := dev.Display
	return runWindow(dev, "macropad preview: "+tl.Name(), preview.New(engine, d.ScreenWidth, d.ScreenHeight))
}

func cmdRecord(args []string) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	outPath := fs.String("o", "take.yaml", "Output macro file")
	name := fs.String("name", "take", "Macro name")
	anchor := fs.Int("anchor", 0, "Loop anchor step index")
	desc := fs.String("desc", "", "Macro description")
	configDir := fs.String("config", "", "Config directory (default: embedded)")
	_ = fs.Parse(args)

	l, err := newLoader(*configDir)
	if err != nil {
		return err
	}
	dev, err := l.LoadDevice()
	if err != nil {
		return err
	}

	c := capture.New(system.NewGamepadInput(), record.NewBuilder(), capture.Options{
		Path:        *outPath,
		Name:        *name,
		LoopAnchor:  *anchor,
		Description: *desc,
	}, dev.Display.ScreenWidth, dev.Display.ScreenHeight)

	log.Printf("Press F1 to record, F2 to stop and save to %s", *outPath)
	return runWindow(dev, "macropad record", c)
}

// runWindow opens an ebiten window ticking once per poll period
func runWindow(dev *config.DeviceConfig, title string, s scene.Scene) error {
	d := dev.Display
	g := game.New(s, d.ScreenWidth, d.ScreenHeight)
	g.SetTick(tickOf(dev))
	defer g.Close()

	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle(title)

	return ebiten.RunGame(g)
}
