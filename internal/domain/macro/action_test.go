package macro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_String(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionUp, "up"},
		{ActionRRight, "r_right"},
		{ActionZR, "zr"},
		{ActionCapture, "capture"},
		{ActionNothing, "nothing"},
		{ActionTriggers, "triggers"},
		{ActionEnd, "end"},
		{Action(99), "unknown"},
		{Action(-1), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.String())
		})
	}
}

func TestParseAction_RoundTripsEveryName(t *testing.T) {
	for _, a := range Actions() {
		parsed, ok := ParseAction(a.String())
		require.True(t, ok, "name %q should parse", a)
		assert.Equal(t, a, parsed)
	}
}

func TestParseAction_IgnoresCaseAndSpace(t *testing.T) {
	a, ok := ParseAction("  R_Left ")
	require.True(t, ok)
	assert.Equal(t, ActionRLeft, a)

	_, ok = ParseAction("jump")
	assert.False(t, ok)
}

func TestAction_Kind(t *testing.T) {
	counts := map[Kind]int{}
	for _, a := range Actions() {
		counts[a.Kind()]++
	}

	assert.Equal(t, 4, counts[KindPrimaryStick])
	assert.Equal(t, 4, counts[KindSecondaryStick])
	assert.Equal(t, 9, counts[KindButton])
	assert.Equal(t, 1, counts[KindComposite])
	assert.Equal(t, 1, counts[KindIdle])
	assert.Equal(t, 1, counts[KindReserved])
	assert.Zero(t, counts[KindInvalid])

	assert.Equal(t, KindInvalid, Action(42).Kind())
}

func TestAction_Playable(t *testing.T) {
	assert.True(t, ActionNothing.Playable())
	assert.True(t, ActionTriggers.Playable())
	assert.False(t, ActionEnd.Playable())
	assert.False(t, Action(42).Playable())
}

func TestAction_UnmarshalText(t *testing.T) {
	var a Action
	require.NoError(t, a.UnmarshalText([]byte("PLUS")))
	assert.Equal(t, ActionPlus, a)

	err := a.UnmarshalText([]byte("turbo"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAction))

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "turbo", actionErr.Name)
}

func TestAction_MarshalText(t *testing.T) {
	text, err := ActionRDown.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "r_down", string(text))

	_, err = Action(77).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidAction)
}
