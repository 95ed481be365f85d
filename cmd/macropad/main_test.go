package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/hidmacro/internal/application/driver"
	"github.com/younwookim/hidmacro/internal/application/playback"
	"github.com/younwookim/hidmacro/internal/application/replay"
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/domain/report"
	"github.com/younwookim/hidmacro/internal/infrastructure/config"
	"github.com/younwookim/hidmacro/internal/infrastructure/gadget"
)

func TestEmbeddedConfigs(t *testing.T) {
	l, err := newLoader("")
	require.NoError(t, err)

	dev, err := l.LoadDevice()
	require.NoError(t, err)
	assert.Equal(t, 8, dev.TickMillis)
	assert.Equal(t, 2, dev.Echoes)

	names, err := l.ListMacros()
	require.NoError(t, err)
	assert.Contains(t, names, "balloon")

	for _, name := range names {
		_, err := loadMacro(l, name)
		assert.NoError(t, err, "macro %s", name)
	}
}

func TestLoadMacro_FromPath(t *testing.T) {
	tl, err := macro.NewTimeline("mine", []macro.Step{{Action: macro.ActionA, Ticks: 3}}, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, config.WriteMacro(path, tl, ""))

	l, err := newLoader("")
	require.NoError(t, err)
	loaded, err := loadMacro(l, path)
	require.NoError(t, err)
	assert.Equal(t, tl.Steps(), loaded.Steps())
}

func TestDryRun_DefaultCoversSetupAndOneLoop(t *testing.T) {
	dev := config.DefaultDevice()
	l, err := newLoader("")
	require.NoError(t, err)
	tl, err := l.LoadMacro("sync")
	require.NoError(t, err)

	rec, err := dryRun(&dev, tl, 0)
	require.NoError(t, err)

	est := playback.EstimatePolls(tl, dev.Echoes)
	assert.Equal(t, est.SetupPolls+est.LoopPolls, rec.FrameCount())
	assert.False(t, rec.IsRecording())

	data := rec.Data()
	assert.Equal(t, "sync", data.Macro)
	assert.Equal(t, dev.Echoes, data.Echoes)
}

func TestDryRun_EchoTriples(t *testing.T) {
	dev := config.DefaultDevice()
	tl, err := macro.NewTimeline("t", []macro.Step{
		{Action: macro.ActionA, Ticks: 0},
		{Action: macro.ActionNothing, Ticks: 0},
	}, 0)
	require.NoError(t, err)

	rec, err := dryRun(&dev, tl, 30)
	require.NoError(t, err)

	frames := rec.Data().Frames
	require.Len(t, frames, 30)
	for i := 0; i+2 < len(frames); i += 3 {
		assert.Equal(t, frames[i].Report(), frames[i+1].Report(), "poll %d", i+1)
		assert.Equal(t, frames[i].Report(), frames[i+2].Report(), "poll %d", i+2)
	}
}

func TestDescribe(t *testing.T) {
	tl, err := macro.NewTimeline("demo", []macro.Step{
		{Action: macro.ActionA, Ticks: 1},
		{Action: macro.ActionB, Ticks: 0},
	}, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	describe(&buf, tl, 2, 8*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "OK   demo")
	assert.Contains(t, out, "steps 2 (setup 1, body 1), loop anchor 1")
	// setup (3 + 2) * 3 = 15 polls, loop (1 + 1) * 3 = 6 polls
	assert.Contains(t, out, "setup 15 polls (120ms), loop 6 polls (48ms)")
}

func TestReplayStopsWhenTraceEnds(t *testing.T) {
	frames := []report.InputReport{report.Neutral(), report.Neutral(), report.Neutral()}
	frames[1].Buttons = report.ButtonA

	data := replay.TraceData{TickMillis: 1}
	for i, r := range frames {
		data.Frames = append(data.Frames, replay.NewFrameReport(i, r))
	}
	rp := replay.NewReplayer(data)

	var buf bytes.Buffer
	d, err := driver.New(rp, gadget.NewWriter(&buf, gadget.FormatRaw), time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.SetObserver(chainStop(d, rp.Done, cancel))

	require.NoError(t, d.Run(ctx))
	assert.True(t, rp.Done())
	// a tick racing the cancel may append one neutral report
	require.GreaterOrEqual(t, buf.Len(), len(frames)*report.Size)
	assert.Equal(t, byte(report.ButtonA), buf.Bytes()[report.Size])
}

func TestOpenSink_HexFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.hex")
	sink, err := openSink(path, true)
	require.NoError(t, err)

	require.NoError(t, sink.Send(report.Neutral()))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0000088080808000\n", string(data))
}

func TestNewEngine_UsesDeviceSettings(t *testing.T) {
	dev := config.DefaultDevice()
	dev.Echoes = 1
	dev.Once = true
	tl, err := macro.NewTimeline("t", []macro.Step{{Action: macro.ActionA}}, 0)
	require.NoError(t, err)

	e, err := newEngine(&dev, tl)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Echoes())

	for i := 0; i < 20; i++ {
		e.Poll()
	}
	assert.True(t, e.State().Terminal())
}

func TestHoldLogs(t *testing.T) {
	var out bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&out)
	defer log.SetOutput(prev)

	flush := holdLogs()
	log.Print("while monitoring")
	assert.Zero(t, out.Len(), "log reached the terminal while held")

	flush()
	assert.Contains(t, out.String(), "while monitoring")
	assert.Same(t, &out, log.Writer())

	log.Print("after")
	assert.Contains(t, out.String(), "after")
}
