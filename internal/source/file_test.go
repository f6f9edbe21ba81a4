package source

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestFileSourceReadsContent(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "frame*.bin")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	want := []byte("\xff\xd8hello\xff\xd9")
	if _, err := tmp.Write(want); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	tmp.Close()

	src := NewFile("recording", tmp.Name(), 0)
	if err := src.Open(context.Background()); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	buf := make([]byte, len(want))
	n, err := src.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != len(want) || string(buf) != string(want) {
		t.Fatalf("Read() = %q, want %q", buf[:n], want)
	}
}

func TestFileSourceOpenFailsOnMissingPath(t *testing.T) {
	src := NewFile("missing", "/nonexistent/path/to/file.mjpg", 0)
	if err := src.Open(context.Background()); err == nil {
		t.Fatal("Open() on missing file succeeded, want error")
	}
}

func TestFileSourceDelayReportsConfiguredPacing(t *testing.T) {
	src := NewFile("recording", "unused", 200*time.Millisecond)
	if got := src.Delay(); got != 200*time.Millisecond {
		t.Errorf("Delay() = %v, want 200ms", got)
	}
}

func TestFileSourceReadCancels(t *testing.T) {
	r, w := os.Pipe()
	defer r.Close()
	defer w.Close()

	src := &FileSource{name: "blocked", file: r}
	cancel := make(chan struct{})
	src.SetCancel(cancel)

	close(cancel)

	buf := make([]byte, 16)
	_, err := src.Read(buf)
	if err == nil {
		t.Fatal("Read() after cancel succeeded, want error")
	}
}
