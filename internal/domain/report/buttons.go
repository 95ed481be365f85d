package report

import "strings"

// Button is the report's button bitfield
type Button uint16

const (
	ButtonY       Button = 0x0001
	ButtonB       Button = 0x0002
	ButtonA       Button = 0x0004
	ButtonX       Button = 0x0008
	ButtonL       Button = 0x0010
	ButtonR       Button = 0x0020
	ButtonZL      Button = 0x0040
	ButtonZR      Button = 0x0080
	ButtonMinus   Button = 0x0100
	ButtonPlus    Button = 0x0200
	ButtonLClick  Button = 0x0400
	ButtonRClick  Button = 0x0800
	ButtonHome    Button = 0x1000
	ButtonCapture Button = 0x2000
)

// AllButtons lists every button flag in bit order
var AllButtons = []Button{
	ButtonY, ButtonB, ButtonA, ButtonX,
	ButtonL, ButtonR, ButtonZL, ButtonZR,
	ButtonMinus, ButtonPlus, ButtonLClick, ButtonRClick,
	ButtonHome, ButtonCapture,
}

var buttonNames = map[Button]string{
	ButtonY:       "Y",
	ButtonB:       "B",
	ButtonA:       "A",
	ButtonX:       "X",
	ButtonL:       "L",
	ButtonR:       "R",
	ButtonZL:      "ZL",
	ButtonZR:      "ZR",
	ButtonMinus:   "MINUS",
	ButtonPlus:    "PLUS",
	ButtonLClick:  "LCLICK",
	ButtonRClick:  "RCLICK",
	ButtonHome:    "HOME",
	ButtonCapture: "CAPTURE",
}

// Has reports whether every flag in mask is set
func (b Button) Has(mask Button) bool {
	return b&mask == mask
}

// String joins the names of the held buttons with "|", or "-" for none
func (b Button) String() string {
	if b == 0 {
		return "-"
	}
	names := make([]string, 0, 4)
	for _, flag := range AllButtons {
		if b&flag != 0 {
			names = append(names, buttonNames[flag])
		}
	}
	return strings.Join(names, "|")
}

// Hat is the directional pad value
type Hat uint8

const (
	HatTop Hat = iota
	HatTopRight
	HatRight
	HatBottomRight
	HatBottom
	HatBottomLeft
	HatLeft
	HatTopLeft
	HatCenter
)

// String returns the direction name
func (h Hat) String() string {
	switch h {
	case HatTop:
		return "N"
	case HatTopRight:
		return "NE"
	case HatRight:
		return "E"
	case HatBottomRight:
		return "SE"
	case HatBottom:
		return "S"
	case HatBottomLeft:
		return "SW"
	case HatLeft:
		return "W"
	case HatTopLeft:
		return "NW"
	case HatCenter:
		return "C"
	default:
		return "?"
	}
}
