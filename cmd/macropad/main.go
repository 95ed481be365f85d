// Command macropad plays controller macros through a USB HID gadget.
//
// Usage:
//
//	macropad run     -macro balloon [-out /dev/hidg0] [-monitor] [-trace out.json]
//	macropad check   [-macro balloon]
//	macropad trace   -macro balloon -polls 3000 [-o trace.json]
//	macropad replay  -in trace.json [-out /dev/hidg0]
//	macropad preview -macro balloon
//	macropad record  -o take.yaml [-name take] [-anchor 0]
//	macropad descriptor -o report_desc
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/infrastructure/config"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"run", "play a macro to the HID gadget", cmdRun},
	{"check", "validate macros and print runtime estimates", cmdCheck},
	{"trace", "dry-run a macro into a JSON trace", cmdTrace},
	{"replay", "send a recorded trace to the HID gadget", cmdReplay},
	{"preview", "show a macro playing in a window", cmdPreview},
	{"record", "capture a gamepad into a macro file", cmdRecord},
	{"descriptor", "write the HID report descriptor", cmdDescriptor},
}

func main() {
	log.SetFlags(log.Ltime)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	for _, c := range commands {
		if c.name == os.Args[1] {
			if err := c.run(os.Args[2:]); err != nil {
				log.Fatalf("%s: %v", c.name, err)
			}
			return
		}
	}

	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", c.name, c.usage)
	}
}

// newLoader reads configs from dir, or from the embedded defaults when dir
// is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadMacro resolves name as a file path when it looks like one, otherwise
// as a macro bundled with the config
func loadMacro(l *config.Loader, name string) (*macro.Timeline, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") || strings.ContainsRune(name, os.PathSeparator) {
		return config.ReadMacroFile(name)
	}
	return l.LoadMacro(name)
}

// setup loads the device settings and one macro
func setup(configDir, macroName string) (*config.DeviceConfig, *macro.Timeline, error) {
	l, err := newLoader(configDir)
	if err != nil {
		return nil, nil, err
	}
	dev, err := l.LoadDevice()
	if err != nil {
		return nil, nil, err
	}
	tl, err := loadMacro(l, macroName)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Loaded macro %s: %d steps, loop anchor %d", tl.Name(), tl.Len(), tl.LoopAnchor())
	return dev, tl, nil
}

func tickOf(dev *config.DeviceConfig) time.Duration {
	return time.Duration(dev.TickMillis) * time.Millisecond
}
