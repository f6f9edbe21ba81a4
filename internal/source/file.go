package source

import (
	"context"
	"os"
	"time"

	"github.com/nuclio/errors"

	"github.com/mjpeggrab/mjpeggrab/internal/grabstatus"
)

// FileSource replays a previously recorded MJPEG stream from a local file,
// the Go counterpart of source_file.c. delay is the playback pacing the
// grabber applies between frame emissions (reported through Delay); Read
// itself reads as fast as the disk allows.
type FileSource struct {
	name   string
	path   string
	delay  time.Duration
	file   *os.File
	cancel <-chan struct{}
}

// NewFile creates a FileSource over path whose Delay reports delay.
func NewFile(name, path string, delay time.Duration) *FileSource {
	return &FileSource{name: name, path: path, delay: delay}
}

func (f *FileSource) Name() string { return f.name }

// Open opens the backing file read-only, open_file's equivalent.
func (f *FileSource) Open(ctx context.Context) error {
	if f.path == "" {
		return errors.Wrap(grabstatus.ErrFileOpen, "no path configured")
	}
	file, err := os.Open(f.path)
	if err != nil {
		return errors.Wrap(grabstatus.ErrFileOpen, err.Error())
	}
	f.file = file
	return nil
}

// Read performs a cancelable read against the open file, source_read's
// equivalent for a file descriptor. It does not pace itself — per-frame
// playback pacing is the grabber's job (it calls Delay, below), since one
// Read can return many complete frames and pacing belongs between
// emissions, not between reads.
func (f *FileSource) Read(p []byte) (int, error) {
	return cancelableRead(f.file, p, f.cancel)
}

// Delay reports how long the grabber should wait between consecutive
// frame emissions when replaying this file, mjv_grabber.c's
// artificial_delay driven by source_file.c's configured usec.
func (f *FileSource) Delay() time.Duration {
	return f.delay
}

// Close closes the backing file, close_file's equivalent.
func (f *FileSource) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *FileSource) SetCancel(cancel <-chan struct{}) {
	f.cancel = cancel
}
