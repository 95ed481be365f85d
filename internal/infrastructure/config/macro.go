package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/hidmacro/internal/domain/macro"
)

var (
	ErrMissingTicks    = errors.New("ticks is required")
	ErrNegativeTicks   = errors.New("ticks must not be negative")
	ErrFractionalTicks = errors.New("ticks must be a whole number")
	ErrTicksOverflow   = errors.New("ticks exceed 65535")
)

// ParseMacro decodes and validates a YAML macro. fallbackName is used when
// the file does not name itself. Unknown keys are errors.
func ParseMacro(data []byte, fallbackName string) (*macro.Timeline, error) {
	var f MacroFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse macro: %w", err)
	}
	if f.Name == "" {
		f.Name = fallbackName
	}
	return f.Timeline()
}

// Timeline converts the authored file into a validated timeline
func (f *MacroFile) Timeline() (*macro.Timeline, error) {
	steps := make([]macro.Step, 0, len(f.Steps))
	for i, entry := range f.Steps {
		step, err := entry.step()
		if err != nil {
			return nil, &macro.StepError{Index: i, Err: err}
		}
		steps = append(steps, step)
	}

	return macro.NewTimeline(f.Name, steps, f.LoopAnchor)
}

func (e StepEntry) step() (macro.Step, error) {
	a, ok := macro.ParseAction(e.Action)
	if !ok {
		return macro.Step{}, &macro.ActionError{Name: e.Action}
	}

	if e.Ticks == nil {
		return macro.Step{}, ErrMissingTicks
	}

	ticks := *e.Ticks
	switch {
	case math.IsNaN(ticks) || ticks != math.Trunc(ticks):
		return macro.Step{}, fmt.Errorf("%w: %v", ErrFractionalTicks, ticks)
	case ticks < 0:
		return macro.Step{}, fmt.Errorf("%w: %v", ErrNegativeTicks, ticks)
	case ticks > math.MaxUint16:
		return macro.Step{}, fmt.Errorf("%w: %v", ErrTicksOverflow, ticks)
	}

	return macro.Step{Action: a, Ticks: uint16(ticks)}, nil
}

// NewMacroFile converts a timeline back into its authored form
func NewMacroFile(tl *macro.Timeline, description string) *MacroFile {
	steps := tl.Steps()
	f := &MacroFile{
		Name:        tl.Name(),
		Description: description,
		LoopAnchor:  tl.LoopAnchor(),
		Steps:       make([]StepEntry, 0, len(steps)),
	}
	for _, s := range steps {
		ticks := float64(s.Ticks)
		f.Steps = append(f.Steps, StepEntry{Action: s.Action.String(), Ticks: &ticks})
	}
	return f
}

// ReadMacroFile reads a macro from a YAML file outside the loader's fs
func ReadMacroFile(path string) (*macro.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read macro %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tl, err := ParseMacro(data, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load macro %s: %w", path, err)
	}
	return tl, nil
}

// WriteMacro writes a timeline to a YAML file
func WriteMacro(path string, tl *macro.Timeline, description string) error {
	data, err := yaml.Marshal(NewMacroFile(tl, description))
	if err != nil {
		return fmt.Errorf("failed to encode macro: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write macro: %w", err)
	}
	return nil
}
