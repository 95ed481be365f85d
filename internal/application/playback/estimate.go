package playback

import (
	"time"

	"github.com/younwookim/hidmacro/internal/domain/macro"
)

// preambleTicks is the fresh polls spent in Syncing, Resetting and Settling
// before the first step executes.
const preambleTicks = 3

// Estimate is the number of polls playback spends in each part of a
// timeline, echoes included.
type Estimate struct {
	// SetupPolls covers the preamble and every step before the loop anchor
	SetupPolls int
	// LoopPolls covers one pass of the body plus the settle tick after
	// each wrap
	LoopPolls int
}

// EstimatePolls computes poll counts for tl with the given echo count
func EstimatePolls(tl *macro.Timeline, echoes int) Estimate {
	per := echoes + 1

	setup := preambleTicks
	for _, s := range tl.SetupSteps() {
		setup += int(s.Ticks) + 1
	}

	body := 1
	for _, s := range tl.BodySteps() {
		body += int(s.Ticks) + 1
	}

	return Estimate{
		SetupPolls: setup * per,
		LoopPolls:  body * per,
	}
}

// SetupDuration converts SetupPolls to wall time at one poll per tick
func (e Estimate) SetupDuration(tick time.Duration) time.Duration {
	return time.Duration(e.SetupPolls) * tick
}

// LoopDuration converts LoopPolls to wall time at one poll per tick
func (e Estimate) LoopDuration(tick time.Duration) time.Duration {
	return time.Duration(e.LoopPolls) * tick
}
