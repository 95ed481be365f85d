package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

// Deadzone is the stick deflection below which an axis reads as centered
const Deadzone = 0.5

// PadState holds one sample of controller input.
// Axes run from -1 to 1 with up and left negative.
type PadState struct {
	LX, LY  float64
	RX, RY  float64
	Buttons report.Button
}

// buttonPriority is the order single buttons win in when several are held
var buttonPriority = []struct {
	button report.Button
	action macro.Action
}{
	{report.ButtonA, macro.ActionA},
	{report.ButtonB, macro.ActionB},
	{report.ButtonX, macro.ActionX},
	{report.ButtonY, macro.ActionY},
	{report.ButtonL, macro.ActionL},
	{report.ButtonR, macro.ActionR},
	{report.ButtonZR, macro.ActionZR},
	{report.ButtonPlus, macro.ActionPlus},
	{report.ButtonCapture, macro.ActionCapture},
}

// Switch face positions on the standard layout
var padButtons = map[ebiten.StandardGamepadButton]report.Button{
	ebiten.StandardGamepadButtonRightRight:       report.ButtonA,
	ebiten.StandardGamepadButtonRightBottom:      report.ButtonB,
	ebiten.StandardGamepadButtonRightTop:         report.ButtonX,
	ebiten.StandardGamepadButtonRightLeft:        report.ButtonY,
	ebiten.StandardGamepadButtonFrontTopLeft:     report.ButtonL,
	ebiten.StandardGamepadButtonFrontTopRight:    report.ButtonR,
	ebiten.StandardGamepadButtonFrontBottomRight: report.ButtonZR,
	ebiten.StandardGamepadButtonCenterRight:      report.ButtonPlus,
	ebiten.StandardGamepadButtonCenterLeft:       report.ButtonCapture,
}

var keyButtons = map[ebiten.Key]report.Button{
	ebiten.KeyK:     report.ButtonA,
	ebiten.KeyJ:     report.ButtonB,
	ebiten.KeyI:     report.ButtonX,
	ebiten.KeyU:     report.ButtonY,
	ebiten.KeyQ:     report.ButtonL,
	ebiten.KeyE:     report.ButtonR,
	ebiten.KeyR:     report.ButtonZR,
	ebiten.KeyEnter: report.ButtonPlus,
	ebiten.KeyP:     report.ButtonCapture,
}

// GamepadInput samples the first standard-layout gamepad, falling back to
// the keyboard (WASD for the left stick, arrows for the right stick)
type GamepadInput struct {
	ids []ebiten.GamepadID
}

// NewGamepadInput creates a new input reader
func NewGamepadInput() *GamepadInput {
	return &GamepadInput{}
}

// GetInput reads the current input state
func (g *GamepadInput) GetInput() PadState {
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])
	for _, id := range g.ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return readGamepad(id)
		}
	}
	return readKeyboard()
}

// Action reads the current input and resolves it to one action
func (g *GamepadInput) Action() macro.Action {
	return Resolve(g.GetInput())
}

func readGamepad(id ebiten.GamepadID) PadState {
	st := PadState{
		LX: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
		LY: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		RX: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
		RY: ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
	}
	for b, flag := range padButtons {
		if ebiten.IsStandardGamepadButtonPressed(id, b) {
			st.Buttons |= flag
		}
	}
	return st
}

func readKeyboard() PadState {
	st := PadState{
		LX: keyAxis(ebiten.KeyA, ebiten.KeyD),
		LY: keyAxis(ebiten.KeyW, ebiten.KeyS),
		RX: keyAxis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
		RY: keyAxis(ebiten.KeyArrowUp, ebiten.KeyArrowDown),
	}
	for k, flag := range keyButtons {
		if ebiten.IsKeyPressed(k) {
			st.Buttons |= flag
		}
	}
	return st
}

func keyAxis(neg, pos ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	return v
}

// Resolve maps a sample to the single action a timeline step can hold.
// The left stick wins over the right stick, both win over buttons, and
// L with R together is the triggers chord.
func Resolve(st PadState) macro.Action {
	if a, ok := stickAction(st.LX, st.LY,
		macro.ActionUp, macro.ActionDown, macro.ActionLeft, macro.ActionRight); ok {
		return a
	}
	if a, ok := stickAction(st.RX, st.RY,
		macro.ActionRUp, macro.ActionRDown, macro.ActionRLeft, macro.ActionRRight); ok {
		return a
	}

	if st.Buttons.Has(report.ButtonL | report.ButtonR) {
		return macro.ActionTriggers
	}
	for _, p := range buttonPriority {
		if st.Buttons.Has(p.button) {
			return p.action
		}
	}
	return macro.ActionNothing
}

// stickAction picks the dominant axis of a deflected stick
func stickAction(x, y float64, up, down, left, right macro.Action) (macro.Action, bool) {
	ax, ay := math.Abs(x), math.Abs(y)
	if ax < Deadzone && ay < Deadzone {
		return macro.ActionNothing, false
	}
	if ay >= ax {
		if y < 0 {
			return up, true
		}
		return down, true
	}
	if x < 0 {
		return left, true
	}
	return right, true
}
