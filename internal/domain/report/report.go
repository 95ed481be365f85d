// Package report defines the 8-byte HID input report the host reads from the
// emulated controller.
//
// Layout, little-endian:
//
//	0-1: Buttons bitfield
//	  2: Hat (0-7 clockwise from top, 8 = centered)
//	  3: LX
//	  4: LY
//	  5: RX
//	  6: RY
//	  7: vendor specific, always 0
package report

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Size is the encoded length of an InputReport
const Size = 8

// Stick axis values
const (
	StickMin    uint8 = 0x00
	StickCenter uint8 = 0x80
	StickMax    uint8 = 0xFF
)

var ErrShortReport = errors.New("report too short")

// InputReport is one instant of controller state
type InputReport struct {
	Buttons    Button
	Hat        Hat
	LX         uint8
	LY         uint8
	RX         uint8
	RY         uint8
	VendorSpec uint8
}

// Neutral returns a report with no buttons held, both sticks centered and
// the hat centered.
func Neutral() InputReport {
	return InputReport{
		Hat: HatCenter,
		LX:  StickCenter,
		LY:  StickCenter,
		RX:  StickCenter,
		RY:  StickCenter,
	}
}

// Center returns both sticks and the hat to neutral. Buttons are untouched.
func (r *InputReport) Center() {
	r.LX = StickCenter
	r.LY = StickCenter
	r.RX = StickCenter
	r.RY = StickCenter
	r.Hat = HatCenter
}

// IsCentered reports whether both sticks and the hat are neutral
func (r InputReport) IsCentered() bool {
	return r.LX == StickCenter && r.LY == StickCenter &&
		r.RX == StickCenter && r.RY == StickCenter &&
		r.Hat == HatCenter
}

// Bytes encodes the report into its wire form
func (r InputReport) Bytes() [Size]byte {
	var b [Size]byte
	binary.LittleEndian.PutUint16(b[0:2], uint16(r.Buttons))
	b[2] = uint8(r.Hat)
	b[3] = r.LX
	b[4] = r.LY
	b[5] = r.RX
	b[6] = r.RY
	b[7] = r.VendorSpec
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler
func (r InputReport) MarshalBinary() ([]byte, error) {
	b := r.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (r *InputReport) UnmarshalBinary(data []byte) error {
	if len(data) < Size {
		return fmt.Errorf("%w: %d bytes", ErrShortReport, len(data))
	}
	r.Buttons = Button(binary.LittleEndian.Uint16(data[0:2]))
	r.Hat = Hat(data[2])
	r.LX = data[3]
	r.LY = data[4]
	r.RX = data[5]
	r.RY = data[6]
	r.VendorSpec = data[7]
	return nil
}

// String renders the report for logs and the monitor
func (r InputReport) String() string {
	return fmt.Sprintf("btn=%s hat=%s L=(%d,%d) R=(%d,%d)", r.Buttons, r.Hat, r.LX, r.LY, r.RX, r.RY)
}
