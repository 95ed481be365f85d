// Package driver runs the polling loop that asks a report source for the
// next report on every tick and forwards it to the transport.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/younwookim/hidmacro/internal/application/playback"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

var ErrInvalidTick = errors.New("tick must be positive")

// Source produces one report per poll without blocking
type Source interface {
	Poll() report.InputReport
}

// Sink delivers a report to the host
type Sink interface {
	Send(r report.InputReport) error
}

// cursorSource is implemented by sources that expose a playback cursor
type cursorSource interface {
	Cursor() playback.Cursor
}

// Observer is called with every report after it has been sent
type Observer func(poll uint64, r report.InputReport)

// Status is a snapshot of the most recent poll
type Status struct {
	Report    report.InputReport
	Cursor    playback.Cursor
	HasCursor bool
	Polls     uint64
	Running   bool
}

// Driver owns a source and polls it from a single goroutine
type Driver struct {
	src      Source
	sink     Sink
	tick     time.Duration
	observer Observer

	polls uint64

	mu     sync.RWMutex
	status Status
}

// New creates a driver polling src every tick
func New(src Source, sink Sink, tick time.Duration) (*Driver, error) {
	if tick <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTick, tick)
	}
	return &Driver{
		src:    src,
		sink:   sink,
		tick:   tick,
		status: Status{Report: report.Neutral()},
	}, nil
}

// SetObserver installs fn to be called after every send
func (d *Driver) SetObserver(fn Observer) {
	d.observer = fn
}

// Observer returns the installed observer, if any
func (d *Driver) Observer() Observer {
	return d.observer
}

// Step polls the source once and sends the report
func (d *Driver) Step() error {
	r := d.src.Poll()
	d.polls++

	if err := d.sink.Send(r); err != nil {
		return fmt.Errorf("send poll %d: %w", d.polls, err)
	}

	if d.observer != nil {
		d.observer(d.polls, r)
	}

	d.publish(r, true)
	return nil
}

// Run polls until ctx is cancelled or the sink fails. Cancellation is not
// an error.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	log.Printf("Polling every %v", d.tick)
	defer func() {
		d.publish(d.Latest().Report, false)
		log.Printf("Polling stopped after %d polls", d.polls)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Step(); err != nil {
				return err
			}
		}
	}
}

// RunPolls performs n polls back to back without waiting for the ticker
func (d *Driver) RunPolls(n int) error {
	for i := 0; i < n; i++ {
		if err := d.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Latest returns the most recent status. Safe for concurrent use.
func (d *Driver) Latest() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

// Tick returns the poll period
func (d *Driver) Tick() time.Duration {
	return d.tick
}

func (d *Driver) publish(r report.InputReport, running bool) {
	st := Status{
		Report:  r,
		Polls:   d.polls,
		Running: running,
	}
	if cs, ok := d.src.(cursorSource); ok {
		st.Cursor = cs.Cursor()
		st.HasCursor = true
	}

	d.mu.Lock()
	d.status = st
	d.mu.Unlock()
}
