// Package monitor shows the live playback status in the terminal.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/younwookim/hidmacro/internal/application/driver"
	"github.com/younwookim/hidmacro/internal/domain/report"
)

const (
	refreshRate = time.Second / 30
	gaugeWidth  = 17
)

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	activeStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	idleStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Monitor redraws a status panel from the driver's published snapshots
type Monitor struct {
	screen tcell.Screen
	status func() driver.Status
	cancel context.CancelFunc
	title  string
}

// New initializes the terminal. cancel is called when the user quits.
func New(title string, status func() driver.Status, cancel context.CancelFunc) (*Monitor, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	return NewWithScreen(screen, title, status, cancel), nil
}

// NewWithScreen uses an already initialized screen
func NewWithScreen(screen tcell.Screen, title string, status func() driver.Status, cancel context.CancelFunc) *Monitor {
	return &Monitor{
		screen: screen,
		status: status,
		cancel: cancel,
		title:  title,
	}
}

// Run redraws until ctx is done or the user presses Esc or Ctrl-C.
// The screen is released before Run returns.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go m.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !m.handleEvent(ev) {
				m.cancel()
				return nil
			}
		case <-ticker.C:
			m.draw()
		}
	}
}

// handleEvent returns false when the monitor should stop
func (m *Monitor) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
	case *tcell.EventResize:
		m.screen.Sync()
	}
	return true
}

func (m *Monitor) draw() {
	st := m.status()

	m.screen.Clear()
	m.drawText(0, 0, m.title, titleStyle)
	lines := Lines(st)
	for i, line := range lines {
		m.drawText(0, i+2, line, textStyle)
	}

	y := len(lines) + 3
	for i, b := range report.AllButtons {
		style := idleStyle
		if st.Report.Buttons.Has(b) {
			style = activeStyle
		}
		m.drawText((i%7)*10, y+i/7, b.String(), style)
	}

	m.drawText(0, y+3, "Esc to stop", idleStyle)
	m.screen.Show()
}

func (m *Monitor) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		m.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Lines formats a status snapshot as text rows
func Lines(st driver.Status) []string {
	r := st.Report
	run := "stopped"
	if st.Running {
		run = "running"
	}

	lines := []string{
		fmt.Sprintf("Polls   %d (%s)", st.Polls, run),
	}
	if st.HasCursor {
		c := st.Cursor
		lines = append(lines, fmt.Sprintf("State   %s  step %d  elapsed %d  echoes %d",
			c.State, c.Index, c.Elapsed, c.Echoes))
	}
	lines = append(lines,
		fmt.Sprintf("Buttons %s", r.Buttons),
		fmt.Sprintf("Hat     %s", r.Hat),
		fmt.Sprintf("LX %s %3d", Gauge(r.LX, gaugeWidth), r.LX),
		fmt.Sprintf("LY %s %3d", Gauge(r.LY, gaugeWidth), r.LY),
		fmt.Sprintf("RX %s %3d", Gauge(r.RX, gaugeWidth), r.RX),
		fmt.Sprintf("RY %s %3d", Gauge(r.RY, gaugeWidth), r.RY),
	)
	return lines
}

// Gauge draws an axis value as a bracketed bar of width cells with a
// marker at the value's position
func Gauge(v uint8, width int) string {
	if width < 1 {
		width = 1
	}
	pos := int(v) * (width - 1) / int(report.StickMax)

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		switch {
		case i == pos:
			b.WriteByte('#')
		case i == width/2:
			b.WriteByte('|')
		default:
			b.WriteByte('-')
		}
	}
	b.WriteByte(']')
	return b.String()
}
