package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/hidmacro/internal/domain/report"
)

// Replayer handles report playback from a recorded trace
type Replayer struct {
	data  TraceData
	frame int
}

// NewReplayer creates a new replayer from trace data
func NewReplayer(data TraceData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadTrace loads trace data from a file
func LoadTrace(filename string) (*TraceData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data TraceData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}

	return &data, nil
}

// Next returns the report for the current frame and advances
func (r *Replayer) Next() (report.InputReport, bool) {
	if r.frame >= len(r.data.Frames) {
		return report.Neutral(), false
	}

	fr := r.data.Frames[r.frame]
	r.frame++

	return fr.Report(), true
}

// Poll returns the next recorded report, or a neutral report once the
// trace is exhausted
func (r *Replayer) Poll() report.InputReport {
	rep, _ := r.Next()
	return rep
}

// Done reports whether every frame has been returned
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Macro returns the name of the macro the trace was recorded from
func (r *Replayer) Macro() string {
	return r.data.Macro
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
