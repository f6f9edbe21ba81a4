// Package worker owns one source/grabber pair and runs it to completion on
// its own goroutine, publishing connection state for presentation code —
// the Go counterpart of mjv_thread.c's non-GUI half (the GUI parts of that
// file are out of scope, see SPEC_FULL.md).
package worker

import (
	"context"
	"sync"

	"github.com/nuclio/logger"

	"github.com/mjpeggrab/mjpeggrab/internal/frame"
	"github.com/mjpeggrab/mjpeggrab/internal/grabber"
	"github.com/mjpeggrab/mjpeggrab/internal/grabstatus"
	"github.com/mjpeggrab/mjpeggrab/internal/selfpipe"
	"github.com/mjpeggrab/mjpeggrab/internal/source"
)

// State is a worker's published lifecycle state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Worker owns exactly one source and the grabber reading it, per §4.H.
type Worker struct {
	name   string
	src    source.Source
	log    logger.Logger
	onFrame func(*frame.Frame)

	mu    sync.Mutex
	state State

	cancelWrite *selfpipe.Write
}

// New creates a Worker over src. onFrame is invoked synchronously from the
// worker's goroutine for every frame the grabber emits.
func New(name string, src source.Source, onFrame func(*frame.Frame), log logger.Logger) *Worker {
	return &Worker{name: name, src: src, onFrame: onFrame, log: log}
}

// State returns the worker's current published lifecycle state.
func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Run drives one connection attempt to completion: open the source, run
// the grabber, publish state transitions. It returns the grabber's
// terminal status once the source closes, times out, errors, or Stop is
// called. Run is not re-entrant; call it once per Worker.
func (w *Worker) Run(ctx context.Context) (grabstatus.Status, error) {
	w.setState(Connecting)

	cancelWrite, cancelRead := selfpipe.Pair()
	w.mu.Lock()
	w.cancelWrite = cancelWrite
	w.mu.Unlock()

	w.src.SetCancel(cancelRead.Done())
	if err := w.src.Open(ctx); err != nil {
		w.setState(Disconnected)
		if w.log != nil {
			w.log.WarnWith("source open failed", "worker", w.name, "error", err)
		}
		return grabstatus.ReadError, err
	}
	defer w.src.Close()

	w.setState(Connected)
	g := grabber.New(w.src, w.onFrame, loggerAdapter{w.log})
	status, err := g.Run()
	w.setState(Disconnected)
	return status, err
}

// Stop requests cancellation of a blocked Run via the self-pipe, per
// §4.H: "the supervisor by signal_and_close_write on the self-pipe write
// end; the grabber observes this, returns Canceled". Idempotent.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancelWrite := w.cancelWrite
	w.mu.Unlock()
	if cancelWrite != nil {
		cancelWrite.SignalAndClose()
	}
}

// loggerAdapter narrows a nuclio/logger.Logger down to grabber.Logger so
// the grabber package itself never imports nuclio/logger.
type loggerAdapter struct {
	log logger.Logger
}

func (a loggerAdapter) Debug(format string, args ...interface{}) {
	if a.log != nil {
		a.log.Debug(format, args...)
	}
}

func (a loggerAdapter) Warn(format string, args ...interface{}) {
	if a.log != nil {
		a.log.Warn(format, args...)
	}
}
