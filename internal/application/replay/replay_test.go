package replay

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

func createTestReports() []report.InputReport {
	a := report.Neutral()
	a.Buttons = report.ButtonA

	up := report.Neutral()
	up.LY = report.StickMin

	triggers := report.Neutral()
	triggers.Buttons = report.ButtonL | report.ButtonR
	triggers.RX = report.StickMax

	return []report.InputReport{report.Neutral(), a, up, triggers}
}

func TestFrameReport_RoundTrip(t *testing.T) {
	for i, r := range createTestReports() {
		fr := NewFrameReport(i, r)
		assert.Equal(t, i, fr.F)
		assert.Equal(t, r, fr.Report())
	}
}

func TestRecorder_Record(t *testing.T) {
	rec := NewRecorder("demo", 2, 8)
	assert.True(t, rec.IsRecording())

	for _, r := range createTestReports() {
		rec.Record(r)
	}
	assert.Equal(t, 4, rec.FrameCount())

	rec.Stop()
	rec.Record(report.Neutral())
	assert.False(t, rec.IsRecording())
	assert.Equal(t, 4, rec.FrameCount(), "Stopped recorder must ignore frames")

	data := rec.Data()
	assert.Equal(t, "1.0", data.Version)
	assert.Equal(t, "demo", data.Macro)
	assert.Equal(t, 2, data.Echoes)
	assert.Equal(t, 8, data.TickMillis)
	for i, fr := range data.Frames {
		assert.Equal(t, i, fr.F, "Frame number mismatch at index %d", i)
	}
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder("demo", 2, 8)
	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder("balloon", 2, 8)
	reports := createTestReports()
	for _, r := range reports {
		rec.Record(r)
	}

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(path))

	data, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, "balloon", data.Macro)
	assert.Len(t, data.Frames, len(reports))

	replayer := NewReplayer(*data)
	assert.Equal(t, "balloon", replayer.Macro())
	assert.Equal(t, len(reports), replayer.TotalFrames())

	for i, want := range reports {
		got, ok := replayer.Next()
		require.True(t, ok)
		assert.Equal(t, want, got, "frame %d", i)
	}

	_, ok := replayer.Next()
	assert.False(t, ok)
	assert.True(t, replayer.Done())
}

func TestLoadTrace_Missing(t *testing.T) {
	_, err := LoadTrace(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReplayer_PollAfterEndIsNeutral(t *testing.T) {
	rec := NewRecorder("demo", 0, 8)
	a := report.Neutral()
	a.Buttons = report.ButtonB
	rec.Record(a)

	replayer := NewReplayer(rec.Data())
	assert.Equal(t, a, replayer.Poll())
	assert.Equal(t, report.Neutral(), replayer.Poll())
	assert.Equal(t, report.Neutral(), replayer.Poll())
	assert.Equal(t, 1, replayer.CurrentFrame())
}

func TestReplayer_Reset(t *testing.T) {
	rec := NewRecorder("demo", 2, 8)
	for _, r := range createTestReports() {
		rec.Record(r)
	}
	replayer := NewReplayer(rec.Data())

	for !replayer.Done() {
		replayer.Next()
	}
	assert.Equal(t, 4, replayer.CurrentFrame())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	r, ok := replayer.Next()
	assert.True(t, ok)
	assert.Equal(t, report.Neutral(), r)
}

func TestRecorder_Limit(t *testing.T) {
	rec := NewRecorder("balloon", 2, 8)
	rec.SetLimit(3)

	for i := 0; i < 10; i++ {
		rec.Record(report.Neutral())
	}

	assert.Equal(t, 3, rec.FrameCount())
	assert.False(t, rec.IsRecording())
}

func TestRecorder_NoLimit(t *testing.T) {
	rec := NewRecorder("balloon", 2, 8)
	rec.SetLimit(0)

	for i := 0; i < 10; i++ {
		rec.Record(report.Neutral())
	}

	assert.Equal(t, 10, rec.FrameCount())
	assert.True(t, rec.IsRecording())
}
