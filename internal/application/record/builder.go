// Package record turns a stream of per-tick actions into a timeline.
package record

import (
	"math"

	"github.com/younwookim/hidmacro/internal/domain/macro"
)

// maxRun is the longest run a single step can hold
const maxRun = math.MaxUint16 + 1

// Builder run-length encodes actions sampled once per tick
type Builder struct {
	steps   []macro.Step
	current macro.Action
	run     int
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add records that a was held for one tick
func (b *Builder) Add(a macro.Action) {
	if b.run > 0 && a == b.current && b.run < maxRun {
		b.run++
		return
	}
	b.flush()
	b.current = a
	b.run = 1
}

// Ticks returns the number of ticks recorded so far
func (b *Builder) Ticks() int {
	total := b.run
	for _, s := range b.steps {
		total += int(s.Ticks) + 1
	}
	return total
}

// Steps returns the encoded steps including the open run
func (b *Builder) Steps() []macro.Step {
	out := make([]macro.Step, len(b.steps), len(b.steps)+1)
	copy(out, b.steps)
	if b.run > 0 {
		out = append(out, macro.Step{Action: b.current, Ticks: uint16(b.run - 1)})
	}
	return out
}

// Timeline validates the recording as a timeline looping at anchor
func (b *Builder) Timeline(name string, anchor int) (*macro.Timeline, error) {
	return macro.NewTimeline(name, b.Steps(), anchor)
}

// Reset discards everything recorded
func (b *Builder) Reset() {
	b.steps = nil
	b.run = 0
}

func (b *Builder) flush() {
	if b.run == 0 {
		return
	}
	b.steps = append(b.steps, macro.Step{Action: b.current, Ticks: uint16(b.run - 1)})
	b.run = 0
}
