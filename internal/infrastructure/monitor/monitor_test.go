package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/hidmacro/internal/application/driver"
	"github.com/younwookim/hidmacro/internal/application/playback"
	"github.com/younwookim/hidmacro/internal/application/state"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

func TestGauge(t *testing.T) {
	tests := []struct {
		name string
		v    uint8
		want string
	}{
		{"min", report.StickMin, "[#-|--]"},
		{"center", report.StickCenter, "[--#--]"},
		{"max", report.StickMax, "[--|-#]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Gauge(tt.v, 5))
		})
	}
}

func TestGauge_Width(t *testing.T) {
	assert.Len(t, Gauge(report.StickCenter, gaugeWidth), gaugeWidth+2)
	assert.Equal(t, "[#]", Gauge(report.StickMax, 0))
}

func TestLines(t *testing.T) {
	r := report.Neutral()
	r.Buttons = report.ButtonA | report.ButtonB
	r.LY = report.StickMin

	st := driver.Status{
		Report:    r,
		HasCursor: true,
		Cursor: playback.Cursor{
			State:   state.StateExecuting,
			Index:   12,
			Elapsed: 3,
			Echoes:  1,
		},
		Polls:   42,
		Running: true,
	}

	lines := Lines(st)
	require.Len(t, lines, 8)
	assert.Equal(t, "Polls   42 (running)", lines[0])
	assert.Equal(t, "State   Executing  step 12  elapsed 3  echoes 1", lines[1])
	assert.Equal(t, "Buttons B|A", lines[2])
	assert.Equal(t, "Hat     C", lines[3])
	assert.Contains(t, lines[5], "  0")
}

func TestLines_NoCursor(t *testing.T) {
	lines := Lines(driver.Status{Report: report.Neutral()})
	require.Len(t, lines, 7)
	assert.Equal(t, "Polls   0 (stopped)", lines[0])
	assert.Equal(t, "Buttons -", lines[1])
}

func newTestMonitor(t *testing.T, cancel context.CancelFunc) (*Monitor, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	status := func() driver.Status {
		return driver.Status{Report: report.Neutral()}
	}
	return NewWithScreen(screen, "test", status, cancel), screen
}

func TestMonitor_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	m, _ := newTestMonitor(t, cancel)
	assert.NoError(t, m.Run(ctx))
}

func TestMonitor_EscapeCancels(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cancelled := false
	m, screen := newTestMonitor(t, func() { cancelled = true })
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	require.NoError(t, m.Run(ctx))
	assert.True(t, cancelled)
	assert.NoError(t, ctx.Err())
}

func TestMonitor_HandleEvent(t *testing.T) {
	m, _ := newTestMonitor(t, func() {})

	assert.False(t, m.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, m.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}
