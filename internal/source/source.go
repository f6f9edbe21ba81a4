// Package source abstracts where MJPEG bytes come from — a live camera
// connection or a recorded file — the Go counterpart of source.c/source.h
// plus source_network.c and source_file.c.
package source

import (
	"context"
	"time"

	"github.com/mjpeggrab/mjpeggrab/internal/grabstatus"
)

// readTimeout bounds how long Read will wait for data before giving up,
// matching source_read's 10-second select() timeout.
const readTimeout = 10 * time.Second

// Source is something a grabber can Open, Read bytes from, and Close.
// Open and Read may block; callers cancel a blocked Read by closing the
// channel passed to SetCancel, the channel-based substitute for the
// self-pipe that source_read selects on alongside its file descriptor.
type Source interface {
	// Name identifies the source for logging, source_get_name's equivalent.
	Name() string
	// Open connects to or opens the underlying stream.
	Open(ctx context.Context) error
	// Read behaves like io.Reader.Read, but returns grabstatus.ErrTimeout
	// if no data arrives within readTimeout, and grabstatus.ErrCanceled if
	// cancel fires first.
	Read(p []byte) (int, error)
	// Close releases the underlying connection or file descriptor.
	Close() error
	// SetCancel registers the channel Read selects on to abort early.
	SetCancel(cancel <-chan struct{})
}

// Delayer is implemented by sources that know how far apart consecutive
// frames should be emitted during playback — currently only FileSource,
// for which it carries the configured replay pacing. The grabber checks
// for this via a type assertion rather than putting Delay on Source
// itself, since a live network source has no such notion: frames arrive
// at whatever rate the camera sends them.
type Delayer interface {
	Delay() time.Duration
}

// readResult carries one Read() outcome from the reader goroutine back to
// cancelableRead's select.
type readResult struct {
	n   int
	err error
}

// byteReader is the minimal thing cancelableRead needs: something with a
// blocking Read(p []byte) (int, error), e.g. *net.TCPConn or *os.File.
type byteReader interface {
	Read(p []byte) (int, error)
}

// cancelableRead performs one read against r, unblocking early if cancel
// fires or if readTimeout elapses — the Go analogue of source_read's
// select() over {source fd, selfpipe read fd, 10s timeout}. It spawns one
// goroutine per call because neither os.File nor net.Conn expose a way to
// wait on a read without committing to it; the goroutine leaks until r's
// underlying read unblocks (on Close, EOF, or new data), exactly as mjv's
// own timeout path leaves the actual blocking syscall outstanding until
// the fd is later closed.
func cancelableRead(r byteReader, p []byte, cancel <-chan struct{}) (int, error) {
	resultCh := make(chan readResult, 1)
	go func() {
		n, err := r.Read(p)
		resultCh <- readResult{n, err}
	}()

	select {
	case res := <-resultCh:
		return res.n, res.err
	case <-cancel:
		return 0, grabstatus.ErrCanceled
	case <-time.After(readTimeout):
		return 0, grabstatus.ErrTimeout
	}
}
