package capture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/hidmacro/internal/application/record"
	"github.com/younwookim/hidmacro/internal/application/scene"
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/infrastructure/config"
)

// scriptedInput plays back a fixed action sequence, then nothing
type scriptedInput struct {
	actions []macro.Action
	pos     int
}

func (s *scriptedInput) Action() macro.Action {
	if s.pos >= len(s.actions) {
		return macro.ActionNothing
	}
	a := s.actions[s.pos]
	s.pos++
	return a
}

func newTestCapture(t *testing.T, actions ...macro.Action) (*Capture, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "take.yaml")
	c := New(&scriptedInput{actions: actions}, record.NewBuilder(), Options{
		Path: path,
		Name: "take",
	}, 320, 180)
	return c, path
}

func TestCapture_ImplementsScene(t *testing.T) {
	c, _ := newTestCapture(t)
	var _ scene.Scene = c
}

func TestCapture_IgnoresInputUntilStarted(t *testing.T) {
	c, _ := newTestCapture(t, macro.ActionA, macro.ActionA)

	c.Sample()
	c.Sample()
	assert.False(t, c.Recording())
	assert.Zero(t, c.builder.Ticks())
}

func TestCapture_RecordAndSave(t *testing.T) {
	c, path := newTestCapture(t,
		macro.ActionA, macro.ActionA, macro.ActionA,
		macro.ActionNothing,
		macro.ActionUp, macro.ActionUp,
	)

	c.Start()
	for i := 0; i < 6; i++ {
		c.Sample()
	}
	c.Stop()

	require.NoError(t, c.Err())
	assert.False(t, c.Recording())
	assert.Equal(t, 1, c.Saved())

	tl, err := config.ReadMacroFile(path)
	require.NoError(t, err)
	assert.Equal(t, "take", tl.Name())
	assert.Equal(t, []macro.Step{
		{Action: macro.ActionA, Ticks: 2},
		{Action: macro.ActionNothing, Ticks: 0},
		{Action: macro.ActionUp, Ticks: 1},
	}, tl.Steps())
}

func TestCapture_EmptyTakeIsNotSaved(t *testing.T) {
	c, path := newTestCapture(t)

	c.Start()
	c.Stop()

	assert.ErrorIs(t, c.Err(), macro.ErrEmptyTimeline)
	assert.Zero(t, c.Saved())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCapture_OnExitSavesOpenTake(t *testing.T) {
	c, path := newTestCapture(t, macro.ActionB)

	c.Start()
	c.Sample()
	c.OnExit()

	assert.Equal(t, 1, c.Saved())
	assert.FileExists(t, path)

	// no take open, nothing more to save
	c.OnExit()
	assert.Equal(t, 1, c.Saved())
}

func TestCapture_StartDiscardsPreviousTake(t *testing.T) {
	c, _ := newTestCapture(t, macro.ActionA, macro.ActionB)

	c.Start()
	c.Sample()
	c.Start()
	c.Sample()

	assert.Equal(t, []macro.Step{{Action: macro.ActionB}}, c.builder.Steps())
}
