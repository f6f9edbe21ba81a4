// Package frame holds one captured JPEG image plus its capture time, the Go
// counterpart of mjv_frame.c's struct mjv_frame. libjpeg-backed pixel
// decoding (width, height, row stride, pixbuf) stays out of scope — see
// SPEC_FULL.md's design notes for why — but the Decoded hook exists for a
// future renderer to populate. History replaces the teacher's
// CameraCache/FrameManager ring buffer with one built on ringbuf.Ring.
package frame

import "time"

// Frame is one JPEG image captured from a source, with the timestamp it
// arrived at.
type Frame struct {
	data      []byte
	timestamp time.Time
	decoded   bool
}

// New wraps data captured at the current time. The caller hands over
// ownership of the slice; Frame never mutates it.
func New(data []byte) *Frame {
	return &Frame{data: data, timestamp: time.Now()}
}

// NewAt wraps data captured at an explicit time, used by tests and by any
// caller replaying frames from disk.
func NewAt(data []byte, ts time.Time) *Frame {
	return &Frame{data: data, timestamp: ts}
}

// Data returns the raw JPEG bytes.
func (f *Frame) Data() []byte {
	return f.data
}

// Timestamp returns when the frame was captured.
func (f *Frame) Timestamp() time.Time {
	return f.timestamp
}

// Size returns the number of bytes in the frame.
func (f *Frame) Size() int {
	return len(f.data)
}

// Decoded reports whether SetDecoded has been called on this frame.
func (f *Frame) Decoded() bool {
	return f.decoded
}

// SetDecoded marks the frame as having been handed to a pixel decoder.
// mjv_frame.c tracked decoded width/height/stride directly; this module
// deliberately stops at the boundary and leaves decoding to a consumer.
func (f *Frame) SetDecoded(v bool) {
	f.decoded = v
}
