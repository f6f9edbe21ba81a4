package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjpeggrab/mjpeggrab/internal/frame"
	"github.com/mjpeggrab/mjpeggrab/internal/grabstatus"
)

// stubSource serves one minimal frame then blocks until canceled,
// exercising the Connecting -> Connected -> Disconnected lifecycle.
type stubSource struct {
	served bool
	cancel <-chan struct{}
}

func (s *stubSource) Name() string                  { return "stub" }
func (s *stubSource) Open(ctx context.Context) error { return nil }
func (s *stubSource) Close() error                   { return nil }
func (s *stubSource) SetCancel(c <-chan struct{})    { s.cancel = c }

func (s *stubSource) Read(p []byte) (int, error) {
	if !s.served {
		s.served = true
		data := []byte("HTTP/1.0 200 OK\r\n" +
			"Content-Type: multipart/x-mixed-replace; boundary=--X\r\n" +
			"\r\n" +
			"--X\r\n" +
			"Content-Length: 4\r\n" +
			"\r\n" +
			"\xFF\xD8\xFF\xD9")
		return copy(p, data), nil
	}
	<-s.cancel
	return 0, grabstatus.ErrCanceled
}

func TestWorkerPublishesLifecycleAndDeliversFrame(t *testing.T) {
	src := &stubSource{}
	var received []*frame.Frame
	w := New("cam1", src, func(f *frame.Frame) { received = append(received, f) }, nil)

	require.Equal(t, Disconnected, w.State())

	done := make(chan grabstatus.Status, 1)
	go func() {
		status, _ := w.Run(context.Background())
		done <- status
	}()

	require.Eventually(t, func() bool {
		return len(received) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "\xFF\xD8\xFF\xD9", string(received[0].Data()))

	w.Stop()

	select {
	case status := <-done:
		assert.Equal(t, grabstatus.Canceled, status)
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after Stop()")
	}
	assert.Equal(t, Disconnected, w.State())
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	w := New("cam2", &stubSource{}, func(*frame.Frame) {}, nil)
	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop()
	})
}
