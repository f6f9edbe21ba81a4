package grabber

import (
	"context"

	"github.com/mjpeggrab/mjpeggrab/internal/grabstatus"
)

// fakeSource is an in-memory source.Source that serves a fixed sequence of
// byte chunks, one per Read call, then reports EOF (n=0, nil) — enough to
// drive the grabber through spec.md §8's end-to-end scenarios without a
// real network connection or file on disk.
type fakeSource struct {
	chunks [][]byte
	idx    int
	cancel <-chan struct{}
}

func (f *fakeSource) Name() string                  { return "fake" }
func (f *fakeSource) Open(ctx context.Context) error { return nil }
func (f *fakeSource) Close() error                   { return nil }
func (f *fakeSource) SetCancel(c <-chan struct{})    { f.cancel = c }

func (f *fakeSource) Read(p []byte) (int, error) {
	if f.cancel != nil {
		select {
		case <-f.cancel:
			return 0, grabstatus.ErrCanceled
		default:
		}
	}
	if f.idx >= len(f.chunks) {
		return 0, nil
	}
	n := copy(p, f.chunks[f.idx])
	f.idx++
	return n, nil
}
