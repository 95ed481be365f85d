package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/hidmacro/internal/application/playback"
	"github.com/younwookim/hidmacro/internal/domain/macro"
)

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	macroName := fs.String("macro", "", "Macro name or path (default: every bundled macro)")
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

	names := []string{*macroName}
	if *macroName == "" {
		names, err = l.ListMacros()
		if err != nil {
			return err
		}
	}

	failed := 0
	for _, name := range names {
		tl, err := loadMacro(l, name)
		if err != nil {
			fmt.Fprintf(os.Stdout, "FAIL %s: %v\n", name, err)
			failed++
			continue
		}
		describe(os.Stdout, tl, dev.Echoes, tickOf(dev))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d macros invalid", failed, len(names))
	}
	return nil
}

// describe prints step counts and runtime estimates for tl
func describe(w io.Writer, tl *macro.Timeline, echoes int, tick time.Duration) {
	est := playback.EstimatePolls(tl, echoes)
	fmt.Fprintf(w, "OK   %s\n", tl.Name())
	fmt.Fprintf(w, "     steps %d (setup %d, body %d), loop anchor %d\n",
		tl.Len(), len(tl.SetupSteps()), len(tl.BodySteps()), tl.LoopAnchor())
	fmt.Fprintf(w, "     setup %d polls (%v), loop %d polls (%v)\n",
		est.SetupPolls, est.SetupDuration(tick).Round(time.Millisecond),
		est.LoopPolls, est.LoopDuration(tick).Round(time.Millisecond))
}
