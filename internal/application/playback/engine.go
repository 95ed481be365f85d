// Package playback turns a macro timeline into a stream of input reports.
//
// The Engine is polled once per scheduling tick and always returns a full
// report without blocking. Every fresh report is repeated verbatim for the
// configured number of echo polls before the timeline is consulted again,
// so the host sees each report Echoes+1 times.
package playback

import (
	"errors"
	"fmt"

	"github.com/younwookim/hidmacro/internal/application/state"
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

// DefaultEchoes is the number of times each fresh report is repeated
const DefaultEchoes = 2

var (
	ErrNoTimeline     = errors.New("no timeline")
	ErrNegativeEchoes = errors.New("echo count must not be negative")
)

// Config tunes an Engine
type Config struct {
	// Echoes is how many extra polls replay each fresh report
	Echoes int

	// Once stops playback after the last step instead of wrapping to the
	// loop anchor
	Once bool

	// OnFinished is called once when the engine enters StateFinished
	OnFinished func()
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{Echoes: DefaultEchoes}
}

// Cursor is a read-only snapshot of the engine's position
type Cursor struct {
	State   state.PlaybackState
	Index   int
	Elapsed int
	Echoes  int
}

// Stats counts polls since the engine was created
type Stats struct {
	Polls  uint64
	Fresh  uint64
	Echoed uint64
	Loops  uint64
}

// Engine is the playback state machine. It is not safe for concurrent use;
// one goroutine owns it and calls Poll.
type Engine struct {
	timeline *macro.Timeline
	cfg      Config

	state   state.PlaybackState
	index   int
	elapsed int
	echoes  int
	last    report.InputReport

	resetRequested bool
	signaled       bool

	stats Stats
}

// New creates an engine in StateSyncing
func New(tl *macro.Timeline, cfg Config) (*Engine, error) {
	if tl == nil {
		return nil, ErrNoTimeline
	}
	if cfg.Echoes < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeEchoes, cfg.Echoes)
	}

	return &Engine{
		timeline: tl,
		cfg:      cfg,
		state:    state.StateSyncing,
		last:     report.Neutral(),
	}, nil
}

// Poll returns the next report to send to the host
func (e *Engine) Poll() report.InputReport {
	e.stats.Polls++

	if e.echoes > 0 {
		e.echoes--
		e.stats.Echoed++
		return e.last
	}

	if e.resetRequested {
		e.resetRequested = false
		e.state = state.StateResetting
	}

	r := report.Neutral()
	e.stats.Fresh++

	switch e.state {
	case state.StateSyncing:
		e.state = state.StateResetting

	case state.StateResetting:
		e.index = 0
		e.elapsed = 0
		e.signaled = false
		e.state = state.StateSettling

	case state.StateSettling:
		e.state = state.StateExecuting

	case state.StateExecuting:
		e.execute(&r)

	case state.StateFinishing:
		e.state = state.StateFinished

	case state.StateFinished:
		if !e.signaled {
			e.signaled = true
			if e.cfg.OnFinished != nil {
				e.cfg.OnFinished()
			}
		}
		// Finished reports are never echoed
		return r
	}

	e.last = r
	e.echoes = e.cfg.Echoes
	return r
}

// execute runs one tick of the current step
func (e *Engine) execute(r *report.InputReport) {
	n := e.timeline.Len()
	if e.index < 0 || e.index >= n {
		panic(fmt.Sprintf("playback: cursor %d outside timeline of %d steps", e.index, n))
	}

	step := e.timeline.Step(e.index)
	apply(r, step.Action)

	e.elapsed++
	if e.elapsed > int(step.Ticks) {
		e.index++
		e.elapsed = 0
	}

	if e.index < n {
		return
	}

	// Ran past the last step
	r.Center()
	e.elapsed = 0
	e.stats.Loops++

	if e.cfg.Once {
		e.index = n - 1
		e.state = state.StateFinishing
		return
	}

	e.index = e.timeline.LoopAnchor()
	e.state = state.StateSettling
}

// RequestReset restarts the timeline from step 0 on the next fresh poll.
// Pending echoes drain first.
func (e *Engine) RequestReset() {
	e.resetRequested = true
}

// Cursor returns the current position
func (e *Engine) Cursor() Cursor {
	return Cursor{
		State:   e.state,
		Index:   e.index,
		Elapsed: e.elapsed,
		Echoes:  e.echoes,
	}
}

// State returns the current state
func (e *Engine) State() state.PlaybackState {
	return e.state
}

// Last returns the most recent fresh report
func (e *Engine) Last() report.InputReport {
	return e.last
}

// Stats returns poll counters
func (e *Engine) Stats() Stats {
	return e.stats
}

// Timeline returns the timeline being played
func (e *Engine) Timeline() *macro.Timeline {
	return e.timeline
}

// Echoes returns the configured echo count
func (e *Engine) Echoes() int {
	return e.cfg.Echoes
}
