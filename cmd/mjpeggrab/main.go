// Command mjpeggrab is the headless capture CLI: it loads a list of
// sources, runs one worker per source, writes every emitted frame to disk
// under a filename template, and exits 0 on clean termination (signal, or
// every worker having finished) or 1 on startup error, per spec.md §6.
// Structured as a composition root in the teacher's main.go style —
// construct dependencies, wire callbacks, block on shutdown — generalized
// from a fixed six-camera HTTP server to an arbitrary source list with no
// inbound HTTP surface of its own beyond the monitor's telemetry feed.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/mjpeggrab/mjpeggrab/internal/config"
	"github.com/mjpeggrab/mjpeggrab/internal/filename"
	"github.com/mjpeggrab/mjpeggrab/internal/frame"
	"github.com/mjpeggrab/mjpeggrab/internal/framerate"
	"github.com/mjpeggrab/mjpeggrab/internal/grablog"
	"github.com/mjpeggrab/mjpeggrab/internal/monitor"
	"github.com/mjpeggrab/mjpeggrab/internal/notifier"
	"github.com/mjpeggrab/mjpeggrab/internal/worker"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, err := config.Load()
	if err != nil {
		log.Printf("startup: loading settings: %v", err)
		return 1
	}

	sources, err := config.LoadSources(settings.SourcesFile)
	if err != nil {
		log.Printf("startup: loading %s: %v", settings.SourcesFile, err)
		return 1
	}
	if len(sources) == 0 {
		log.Printf("startup: no source resolvable from %s", settings.SourcesFile)
		return 1
	}

	if err := os.MkdirAll(settings.CaptureDir, 0o755); err != nil {
		log.Printf("startup: creating capture dir: %v", err)
		return 1
	}

	logger, err := grablog.New("mjpeggrab", settings.LogLevel)
	if err != nil {
		log.Printf("startup: building logger: %v", err)
		return 1
	}

	notify := notifier.New(settings.WebhookURL)
	mon := monitor.New(":" + settings.MonitorPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	go func() {
		if err := mon.Run(ctx); err != nil {
			logger.Warn("monitor server stopped: %v", err)
		}
	}()

	workers := make([]*worker.Worker, 0, len(sources))
	for _, sc := range sources {
		src, err := config.BuildSource(sc)
		if err != nil {
			logger.Warn("skipping source %s: %v", sc.Name, err)
			continue
		}

		name := sc.Name
		history := frame.NewHistory(settings.HistorySize)
		rate := framerate.New()
		frameNum := 0

		onFrame := func(f *frame.Frame) {
			frameNum++
			history.Append(f)
			rate.Insert(f.Timestamp())
			writeCapture(logger, settings.CaptureDir, settings.FilenameTmpl, name, frameNum, f)
			mon.Publish(monitor.Event{
				Source: name,
				State:  "connected",
				FPS:    rate.Estimate(time.Now()),
				At:     f.Timestamp(),
			})
		}

		w := worker.New(name, src, onFrame, logger)
		workers = append(workers, w)

		wg.Add(1)
		go func(name string, w *worker.Worker) {
			defer wg.Done()
			status, err := w.Run(ctx)
			logger.Debug("worker %s terminated: status=%s err=%v", name, status, err)
			mon.Publish(monitor.Event{Source: name, State: w.State().String(), At: time.Now()})
			if notifyErr := notify.Notify(notifier.Event{
				Source: name,
				Status: status.String(),
				At:     time.Now(),
			}); notifyErr != nil {
				logger.Warn("notify failed for %s: %v", name, notifyErr)
			}
		}(name, w)
	}

	if len(workers) == 0 {
		log.Printf("startup: no source resolvable after construction failures")
		return 1
	}

	allDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(allDone)
	}()

	select {
	case <-ctx.Done():
	case <-allDone:
	}
	for _, w := range workers {
		w.Stop()
	}
	wg.Wait()
	return 0
}

func writeCapture(logger interface {
	Warn(format string, args ...interface{})
}, dir, tmpl, source string, frameNum int, f *frame.Frame) {
	name := filename.Forge(source, uint64(frameNum), tmpl)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, f.Data(), 0o644); err != nil {
		logger.Warn("writing capture %s: %v", path, err)
		return
	}
	if err := os.Chtimes(path, f.Timestamp(), f.Timestamp()); err != nil {
		logger.Warn("setting capture timestamps on %s: %v", path, err)
	}
}
