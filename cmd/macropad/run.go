package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/younwookim/hidmacro/internal/application/driver"
	"github.com/younwookim/hidmacro/internal/application/playback"
	"github.com/younwookim/hidmacro/internal/application/replay"
	"github.com/younwookim/hidmacro/internal/domain/macro"
	"github.com/younwookim/hidmacro/internal/domain/report"
	"github.com/younwookim/hidmacro/internal/infrastructure/alert"
	"github.com/younwookim/hidmacro/internal/infrastructure/config"
	"github.com/younwookim/hidmacro/internal/infrastructure/gadget"
	"github.com/younwookim/hidmacro/internal/infrastructure/monitor"
)

// defaultTraceMax is ten minutes of reports at the default 8 ms tick
const defaultTraceMax = 75000

func cmdRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	macroName := fs.String("macro", "balloon", "Macro name or path to a .yaml file")
	configDir := fs.String("config", "", "Config directory (default: embedded)")
	out := fs.String("out", "", "HID gadget device (default: from device.json)")
	hex := fs.Bool("hex", false, "Write reports as hex lines")
	once := fs.Bool("once", false, "Stop after the last step instead of looping")
	showMonitor := fs.Bool("monitor", false, "Show live status in the terminal")
	tracePath := fs.String("trace", "", "Record sent reports to a JSON trace")
	traceMax := fs.Int("trace-max", defaultTraceMax, "Stop tracing after this many reports (0: no limit)")
	_ = fs.Parse(args)

	dev, tl, err := setup(*configDir, *macroName)
	if err != nil {
		return err
	}
	if *out != "" {
		dev.Output = *out
	}
	if *once {
		dev.Once = true
	}

	engine, err := newEngine(dev, tl)
	if err != nil {
		return err
	}

	sink, err := openSink(dev.Output, *hex)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	d, err := driver.New(engine, sink, tickOf(dev))
	if err != nil {
		return err
	}

	var rec *replay.Recorder
	if *tracePath != "" {
		rec = replay.NewRecorder(tl.Name(), dev.Echoes, dev.TickMillis)
		rec.SetLimit(*traceMax)
		d.SetObserver(func(_ uint64, r report.InputReport) { rec.Record(r) })
		log.Printf("Tracing enabled: %s (up to %d reports)", *tracePath, *traceMax)
	}

	est := playback.EstimatePolls(tl, dev.Echoes)
	log.Printf("Setup takes %v, each loop %v", est.SetupDuration(d.Tick()), est.LoopDuration(d.Tick()))

	var monitorFn func(ctx context.Context, cancel context.CancelFunc) error
	if *showMonitor {
		monitorFn = func(ctx context.Context, cancel context.CancelFunc) error {
			m, err := monitor.New(tl.Name()+" -> "+dev.Output, d.Latest, cancel)
			if err != nil {
				return err
			}
			return m.Run(ctx)
		}
	}

	var flushLogs func()
	if monitorFn != nil {
		flushLogs = holdLogs()
	}
	runErr := runUntilSignal(d, monitorFn, nil)
	if flushLogs != nil {
		flushLogs()
	}

	if rec != nil {
		rec.Stop()
		if err := rec.Save(*tracePath); err != nil {
			log.Printf("Failed to save trace: %v", err)
		} else {
			log.Printf("Trace saved to: %s (%d frames)", *tracePath, rec.FrameCount())
		}
	}

	return runErr
}

// newEngine builds an engine from device settings, with the completion
// alert wired to OnFinished
func newEngine(dev *config.DeviceConfig, tl *macro.Timeline) (*playback.Engine, error) {
	cfg := playback.Config{
		Echoes: dev.Echoes,
		Once:   dev.Once,
	}

	var buzzer *alert.Buzzer
	if dev.Alert.Enabled {
		buzzer = alert.NewBuzzer(dev.Alert.Frequency, time.Duration(dev.Alert.Millis)*time.Millisecond)
		if err := buzzer.Initialize(); err != nil {
			log.Printf("Alert disabled: %v", err)
		}
	}

	name := tl.Name()
	cfg.OnFinished = func() {
		log.Printf("Macro %s finished", name)
		if buzzer != nil {
			buzzer.Signal()
		}
	}

	return playback.New(tl, cfg)
}

func openSink(path string, hex bool) (*gadget.Gadget, error) {
	if hex {
		if path == "-" || path == "" {
			return gadget.NewWriter(os.Stdout, gadget.FormatHex), nil
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		return gadget.NewWriteCloser(f, gadget.FormatHex), nil
	}
	return gadget.Open(path)
}

// runUntilSignal runs the driver, and the monitor when given, until
// SIGINT/SIGTERM, a send failure, the user quitting the monitor or stop
// returning true after a poll
func runUntilSignal(
	d *driver.Driver,
	monitorFn func(ctx context.Context, cancel context.CancelFunc) error,
	stop func() bool,
) error {
	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if stop != nil {
		d.SetObserver(chainStop(d, stop, cancel))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return d.Run(gctx)
	})
	if monitorFn != nil {
		g.Go(func() error {
			return monitorFn(gctx, cancel)
		})
	}

	return g.Wait()
}

// holdLogs buffers log output while the monitor owns the terminal. The
// returned func restores the previous output and replays the buffer to it.
func holdLogs() func() {
	prev := log.Writer()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	return func() {
		log.SetOutput(prev)
		_, _ = prev.Write(buf.Bytes())
	}
}

// chainStop keeps the driver's current observer and cancels once stop
// reports true
func chainStop(d *driver.Driver, stop func() bool, cancel context.CancelFunc) driver.Observer {
	prev := d.Observer()
	return func(poll uint64, r report.InputReport) {
		if prev != nil {
			prev(poll, r)
		}
		if stop() {
			cancel()
		}
	}
}

func cmdReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	in := fs.String("in", "", "Trace file to send")
	configDir := fs.String("config", "", "Config directory (default: embedded)")
	out := fs.String("out", "", "HID gadget device (default: from device.json)")
	hex := fs.Bool("hex", false, "Write reports as hex lines")
	_ = fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	l, err := newLoader(*configDir)
	if err != nil {
		return err
	}
	dev, err := l.LoadDevice()
	if err != nil {
		return err
	}
	if *out != "" {
		dev.Output = *out
	}

	data, err := replay.LoadTrace(*in)
	if err != nil {
		return err
	}
	if data.TickMillis > 0 {
		dev.TickMillis = data.TickMillis
	}
	rp := replay.NewReplayer(*data)
	log.Printf("Replaying %s: %d frames of %s", *in, rp.TotalFrames(), rp.Macro())

	sink, err := openSink(dev.Output, *hex)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	d, err := driver.New(rp, sink, tickOf(dev))
	if err != nil {
		return err
	}

	return runUntilSignal(d, nil, rp.Done)
}

func cmdTrace(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	macroName := fs.String("macro", "balloon", "Macro name or path to a .yaml file")
	configDir := fs.String("config", "", "Config directory (default: embedded)")
	polls := fs.Int("polls", 0, "Number of polls (default: setup plus one loop)")
	outPath := fs.String("o", "", "Output file (default: trace_<time>.json)")
	_ = fs.Parse(args)

	dev, tl, err := setup(*configDir, *macroName)
	if err != nil {
		return err
	}

	if *outPath == "" {
		*outPath = replay.GenerateFilename()
	}

	rec, err := dryRun(dev, tl, *polls)
	if err != nil {
		return err
	}
	if err := rec.Save(*outPath); err != nil {
		return err
	}

	log.Printf("Trace saved to: %s (%d frames)", *outPath, rec.FrameCount())
	return nil
}

// dryRun polls a fresh engine n times without a device. n <= 0 covers the
// setup and one full loop.
func dryRun(dev *config.DeviceConfig, tl *macro.Timeline, n int) (*replay.Recorder, error) {
	engine, err := playback.New(tl, playback.Config{Echoes: dev.Echoes, Once: dev.Once})
	if err != nil {
		return nil, err
	}

	if n <= 0 {
		est := playback.EstimatePolls(tl, dev.Echoes)
		n = est.SetupPolls + est.LoopPolls
	}

	d, err := driver.New(engine, gadget.NewWriter(io.Discard, gadget.FormatRaw), tickOf(dev))
	if err != nil {
		return nil, err
	}

	rec := replay.NewRecorder(tl.Name(), dev.Echoes, dev.TickMillis)
	d.SetObserver(func(_ uint64, r report.InputReport) { rec.Record(r) })

	if err := d.RunPolls(n); err != nil {
		return nil, err
	}
	rec.Stop()
	return rec, nil
}

func cmdDescriptor(args []string) error {
	fs := flag.NewFlagSet("descriptor", flag.ExitOnError)
	outPath := fs.String("o", "report_desc", "Output file, e.g. functions/hid.usb0/report_desc")
	_ = fs.Parse(args)

	if err := gadget.WriteDescriptor(*outPath); err != nil {
		return err
	}
	log.Printf("Report descriptor written to: %s", *outPath)
	return nil
}
