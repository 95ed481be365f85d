package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/hidmacro/internal/domain/report"
)

var ErrNoFrames = errors.New("no frames to save")

// Recorder records every report handed to the transport
type Recorder struct {
	data      TraceData
	recording bool
	frame     int
	limit     int
}

// NewRecorder creates a new recorder for the named macro
func NewRecorder(macroName string, echoes, tickMillis int) *Recorder {
	return &Recorder{
		data: TraceData{
			Version:    "1.0",
			Macro:      macroName,
			Echoes:     echoes,
			TickMillis: tickMillis,
			StartTime:  time.Now().Format(time.RFC3339),
			Frames:     make([]FrameReport, 0, 7500), // Pre-allocate for ~1 minute at 8ms
		},
		recording: true,
		frame:     0,
	}
}

// SetLimit stops recording after n frames. n <= 0 means no limit.
func (r *Recorder) SetLimit(n int) {
	r.limit = n
}

// Record records a single poll's report
func (r *Recorder) Record(rep report.InputReport) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, NewFrameReport(r.frame, rep))
	r.frame++

	if r.limit > 0 && len(r.data.Frames) >= r.limit {
		r.recording = false
	}
}

// Save writes the trace data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the trace data
func (r *Recorder) Data() TraceData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("trace_%s.json", time.Now().Format("20060102_150405"))
}
