package macro

import "fmt"

// Step asserts Action for Ticks+1 fresh polls before playback moves on
type Step struct {
	Action Action
	Ticks  uint16
}

// Timeline is an immutable, validated sequence of steps.
//
// Steps before the loop anchor run once after a reset; when playback runs
// past the last step it resumes at the anchor, so the body repeats forever.
type Timeline struct {
	name       string
	steps      []Step
	loopAnchor int
}

// NewTimeline validates steps and returns a timeline owning a private copy
// of them.
func NewTimeline(name string, steps []Step, loopAnchor int) (*Timeline, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyTimeline
	}
	if loopAnchor < 0 || loopAnchor >= len(steps) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLoopAnchor, loopAnchor, len(steps))
	}
	for i, s := range steps {
		if !s.Action.Playable() {
			return nil, &StepError{Index: i, Err: fmt.Errorf("%w: %s", ErrInvalidAction, s.Action)}
		}
	}

	owned := make([]Step, len(steps))
	copy(owned, steps)

	return &Timeline{
		name:       name,
		steps:      owned,
		loopAnchor: loopAnchor,
	}, nil
}

// Name returns the timeline name
func (t *Timeline) Name() string {
	return t.name
}

// Len returns the number of steps
func (t *Timeline) Len() int {
	return len(t.steps)
}

// Step returns the step at index i. It panics when i is out of range.
func (t *Timeline) Step(i int) Step {
	return t.steps[i]
}

// Steps returns a copy of every step
func (t *Timeline) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// LoopAnchor returns the index playback wraps to
func (t *Timeline) LoopAnchor() int {
	return t.loopAnchor
}

// SetupSteps returns a copy of the one-time steps before the anchor
func (t *Timeline) SetupSteps() []Step {
	out := make([]Step, t.loopAnchor)
	copy(out, t.steps[:t.loopAnchor])
	return out
}

// BodySteps returns a copy of the repeating steps from the anchor on
func (t *Timeline) BodySteps() []Step {
	out := make([]Step, len(t.steps)-t.loopAnchor)
	copy(out, t.steps[t.loopAnchor:])
	return out
}
