// Package macro defines the authored input timeline: action symbols, timed
// steps and the immutable Timeline that playback walks through.
package macro

import "strings"

// Action is a symbolic controller input asserted for the length of a step
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionRUp
	ActionRDown
	ActionRLeft
	ActionRRight
	ActionX
	ActionY
	ActionA
	ActionB
	ActionL
	ActionR
	ActionZR
	ActionPlus
	ActionCapture
	ActionNothing
	ActionTriggers
	// ActionEnd is reserved as a terminator and never appears in a loaded timeline
	ActionEnd

	actionCount
)

// Kind groups actions by how they affect a report
type Kind int

const (
	KindInvalid Kind = iota
	KindPrimaryStick
	KindSecondaryStick
	KindButton
	KindComposite
	KindIdle
	KindReserved
)

var actionNames = [actionCount]string{
	ActionUp:       "up",
	ActionDown:     "down",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionRUp:      "r_up",
	ActionRDown:    "r_down",
	ActionRLeft:    "r_left",
	ActionRRight:   "r_right",
	ActionX:        "x",
	ActionY:        "y",
	ActionA:        "a",
	ActionB:        "b",
	ActionL:        "l",
	ActionR:        "r",
	ActionZR:       "zr",
	ActionPlus:     "plus",
	ActionCapture:  "capture",
	ActionNothing:  "nothing",
	ActionTriggers: "triggers",
	ActionEnd:      "end",
}

// Actions returns every defined action in declaration order
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is a member of the action set
func (a Action) Valid() bool {
	return a >= 0 && a < actionCount
}

// String returns the authored name of the action
func (a Action) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return actionNames[a]
}

// Kind classifies the action
func (a Action) Kind() Kind {
	switch {
	case a >= ActionUp && a <= ActionRight:
		return KindPrimaryStick
	case a >= ActionRUp && a <= ActionRRight:
		return KindSecondaryStick
	case a >= ActionX && a <= ActionCapture:
		return KindButton
	case a == ActionTriggers:
		return KindComposite
	case a == ActionNothing:
		return KindIdle
	case a == ActionEnd:
		return KindReserved
	default:
		return KindInvalid
	}
}

// Playable reports whether the action may appear in a timeline
func (a Action) Playable() bool {
	k := a.Kind()
	return k != KindInvalid && k != KindReserved
}

// ParseAction converts an authored name into an Action. Matching ignores
// case and surrounding whitespace.
func ParseAction(name string) (Action, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for a, s := range actionNames {
		if s == n {
			return Action(a), true
		}
	}
	return ActionNothing, false
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, ErrInvalidAction
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	parsed, ok := ParseAction(string(text))
	if !ok {
		return &ActionError{Name: string(text)}
	}
	*a = parsed
	return nil
}
