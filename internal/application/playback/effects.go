package playback

import (
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

// axis selects which stick axis an effect drives
type axis int

const (
	axisNone axis = iota
	axisLX
	axisLY
	axisRX
	axisRY
)

// effect describes how one action mutates a freshly neutral report
type effect struct {
	set     bool
	axis    axis
	value   uint8
	buttons report.Button
	center  bool
}

func stick(a axis, v uint8) effect {
	return effect{set: true, axis: a, value: v}
}

func press(b report.Button) effect {
	return effect{set: true, buttons: b}
}

// effects is indexed by action. Actions past its end or without an entry
// center the sticks and the hat.
var effects = [...]effect{
	macro.ActionUp:    stick(axisLY, report.StickMin),
	macro.ActionDown:  stick(axisLY, report.StickMax),
	macro.ActionLeft:  stick(axisLX, report.StickMin),
	macro.ActionRight: stick(axisLX, report.StickMax),

	macro.ActionRUp:    stick(axisRY, report.StickMin),
	macro.ActionRDown:  stick(axisRY, report.StickMax),
	macro.ActionRLeft:  stick(axisRX, report.StickMin),
	macro.ActionRRight: stick(axisRX, report.StickMax),

	macro.ActionX: press(report.ButtonX),
	macro.ActionY: press(report.ButtonY),
	macro.ActionA: press(report.ButtonA),
	macro.ActionB: press(report.ButtonB),
	// l is a plain button press; the bundled macros only reach L through triggers
	macro.ActionL:       press(report.ButtonL),
	macro.ActionR:       press(report.ButtonR),
	macro.ActionZR:      press(report.ButtonZR),
	macro.ActionPlus:    press(report.ButtonPlus),
	macro.ActionCapture: press(report.ButtonCapture),

	macro.ActionTriggers: press(report.ButtonL | report.ButtonR),

	macro.ActionNothing: {set: true, center: true},
}

// lookup returns the effect for a, if the table has one
func lookup(a macro.Action) (effect, bool) {
	if a < 0 || int(a) >= len(effects) || !effects[a].set {
		return effect{}, false
	}
	return effects[a], true
}

// apply writes the effect of a onto r
func apply(r *report.InputReport, a macro.Action) {
	e, ok := lookup(a)
	if !ok || e.center {
		r.Center()
		return
	}

	switch e.axis {
	case axisLX:
		r.LX = e.value
	case axisLY:
		r.LY = e.value
	case axisRX:
		r.RX = e.value
	case axisRY:
		r.RY = e.value
	}
	r.Buttons |= e.buttons
}

// Render returns the report a single action produces on its own
func Render(a macro.Action) report.InputReport {
	r := report.Neutral()
	apply(&r, a)
	return r
}
