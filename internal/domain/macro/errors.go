package macro

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTimeline = errors.New("timeline has no steps")
	ErrLoopAnchor    = errors.New("loop anchor outside timeline")
	ErrInvalidAction = errors.New("invalid action")
)

// ActionError reports an action name that is not part of the action set
type ActionError struct {
	Name string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}

// Unwrap lets errors.Is match ErrInvalidAction
func (e *ActionError) Unwrap() error {
	return ErrInvalidAction
}

// StepError attaches the index of the offending step to a validation error
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
