package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/hidmacro/internal/application/playback"
	"github.com/younwookim/hidmacro/internal/application/scene"
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

func newTestPreview(t *testing.T) (*Preview, *playback.Engine) {
	t.Helper()
	tl, err := macro.NewTimeline("test", []macro.Step{
		{Action: macro.ActionA, Ticks: 0},
		{Action: macro.ActionNothing, Ticks: 0},
	}, 0)
	require.NoError(t, err)

	e, err := playback.New(tl, playback.Config{})
	require.NoError(t, err)
	return New(e, 320, 180), e
}

func TestPreview_ImplementsScene(t *testing.T) {
	p, _ := newTestPreview(t)
	var _ scene.Scene = p
}

func TestPreview_UpdatePollsOnce(t *testing.T) {
	p, e := newTestPreview(t)

	next, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, uint64(1), e.Stats().Polls)
}

func TestPreview_ShowsEngineOutput(t *testing.T) {
	p, _ := newTestPreview(t)

	// Syncing, Resetting, Settling, then the first step
	for i := 0; i < 4; i++ {
		p.Step()
	}
	assert.Equal(t, report.ButtonA, p.Last().Buttons)
}

func TestPreview_PauseStopsPolling(t *testing.T) {
	p, e := newTestPreview(t)
	p.Step()

	p.paused = true
	p.Step()
	p.Step()
	assert.True(t, p.Paused())
	assert.Equal(t, uint64(1), e.Stats().Polls)
}

func TestStickOffset(t *testing.T) {
	assert.InDelta(t, 0, StickOffset(report.StickMin, 42), 1e-9)
	assert.InDelta(t, 42, StickOffset(report.StickMax, 42), 1e-9)
	assert.InDelta(t, 21, StickOffset(report.StickCenter, 42), 0.2)
}

func TestHatCell(t *testing.T) {
	seen := map[[2]int]bool{}
	for h := report.HatTop; h <= report.HatTopLeft; h++ {
		col, row, ok := HatCell(h)
		require.True(t, ok, "hat %s", h)
		assert.False(t, col == 1 && row == 1, "hat %s lit the center", h)
		seen[[2]int{col, row}] = true
	}
	assert.Len(t, seen, 8)

	_, _, ok := HatCell(report.HatCenter)
	assert.False(t, ok)
}
