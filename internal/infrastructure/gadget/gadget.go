// Package gadget delivers input reports to the host through the Linux USB
// HID gadget driver.
//
// The gadget itself (VID/PID, strings, the report descriptor) is configured
// through configfs before this program runs; once bound, every write of
// report.Size bytes to the device node becomes one IN report.
package gadget

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/younwookim/hidmacro/internal/domain/report"
)

var ErrClosed = errors.New("gadget closed")

// Format selects how reports are written
type Format int

const (
	// FormatRaw writes the 8 report bytes as-is
	FormatRaw Format = iota
	// FormatHex writes one hex-encoded report per line, for debugging
	FormatHex
)

// Gadget writes reports to a device node or any io.Writer
type Gadget struct {
	w      io.Writer
	closer io.Closer
	format Format
	sent   uint64
}

// Open opens a HID gadget device node such as /dev/hidg0
func Open(path string) (*Gadget, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open gadget %s: %w", path, err)
	}
	return &Gadget{w: f, closer: f, format: FormatRaw}, nil
}

// NewWriter wraps w. The caller keeps ownership of w.
func NewWriter(w io.Writer, format Format) *Gadget {
	return &Gadget{w: w, format: format}
}

// NewWriteCloser wraps w and closes it on Close
func NewWriteCloser(w io.WriteCloser, format Format) *Gadget {
	return &Gadget{w: w, closer: w, format: format}
}

// Send writes one report
func (g *Gadget) Send(r report.InputReport) error {
	if g.w == nil {
		return ErrClosed
	}

	b := r.Bytes()
	var out []byte
	switch g.format {
	case FormatHex:
		out = append([]byte(hex.EncodeToString(b[:])), '\n')
	default:
		out = b[:]
	}

	n, err := g.w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if n != len(out) {
		return io.ErrShortWrite
	}

	g.sent++
	return nil
}

// Sent returns the number of reports written
func (g *Gadget) Sent() uint64 {
	return g.sent
}

// Close releases the device node if Open created it
func (g *Gadget) Close() error {
	if g.w == nil {
		return ErrClosed
	}
	g.w = nil
	if g.closer != nil {
		return g.closer.Close()
	}
	return nil
}
