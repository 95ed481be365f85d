package replay

import "github.com/younwookim/hidmacro/internal/domain/report"

// FrameReport records the report sent on a single poll
type FrameReport struct {
	F  int    `json:"f"`           // Poll number
	B  uint16 `json:"b,omitempty"` // Buttons
	H  uint8  `json:"h"`           // Hat
	LX uint8  `json:"lx"`          // Left stick X
	LY uint8  `json:"ly"`          // Left stick Y
	RX uint8  `json:"rx"`          // Right stick X
	RY uint8  `json:"ry"`          // Right stick Y
}

// TraceData contains every report sent during a playback session
type TraceData struct {
	Version    string        `json:"version"`
	Macro      string        `json:"macro"`
	Echoes     int           `json:"echoes"`
	TickMillis int           `json:"tickMillis"`
	StartTime  string        `json:"startTime"`
	Frames     []FrameReport `json:"frames"`
}

// NewFrameReport captures r as poll number f
func NewFrameReport(f int, r report.InputReport) FrameReport {
	return FrameReport{
		F:  f,
		B:  uint16(r.Buttons),
		H:  uint8(r.Hat),
		LX: r.LX,
		LY: r.LY,
		RX: r.RX,
		RY: r.RY,
	}
}

// Report converts the frame back into an input report
func (fr FrameReport) Report() report.InputReport {
	return report.InputReport{
		Buttons: report.Button(fr.B),
		Hat:     report.Hat(fr.H),
		LX:      fr.LX,
		LY:      fr.LY,
		RX:      fr.RX,
		RY:      fr.RY,
	}
}
