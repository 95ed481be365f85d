package state

// PlaybackState is the current phase of the playback state machine
type PlaybackState int

const (
	StateSyncing PlaybackState = iota
	StateResetting
	StateSettling
	StateExecuting
	StateFinishing
	StateFinished
)

// String returns the string representation of the playback state
func (s PlaybackState) String() string {
	switch s {
	case StateSyncing:
		return "Syncing"
	case StateResetting:
		return "Resetting"
	case StateSettling:
		return "Settling"
	case StateExecuting:
		return "Executing"
	case StateFinishing:
		return "Finishing"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state machine can no longer leave s
func (s PlaybackState) Terminal() bool {
	return s == StateFinished
}
