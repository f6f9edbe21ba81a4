package frame

import (
	"fmt"
	"time"

	"github.com/mjpeggrab/mjpeggrab/internal/ringbuf"
)

// History is a fixed-capacity record of recently captured frames, the Go
// counterpart of mjv_framebuf.c's struct mjv_framebuf. Unlike the C
// original, whose destructor frees each evicted frame explicitly, History
// passes a nil destructor to its ring — Go's garbage collector reclaims a
// *Frame once History and any caller holding it both drop their reference,
// so there is nothing for an eviction callback to do (see SPEC_FULL.md §9).
type History struct {
	ring *ringbuf.Ring[*Frame]
}

// NewHistory creates a History retaining up to capacity frames.
func NewHistory(capacity int) *History {
	return &History{ring: ringbuf.New[*Frame](capacity, nil)}
}

// Append records a newly captured frame, evicting the oldest once History
// is at capacity.
func (h *History) Append(f *Frame) {
	h.ring.Append(f)
}

// Used returns how many frames are currently retained.
func (h *History) Used() int {
	return h.ring.Used()
}

// Capacity returns the maximum number of frames retained.
func (h *History) Capacity() int {
	return h.ring.Size()
}

// Oldest returns the oldest retained frame, or nil if History is empty.
func (h *History) Oldest() *Frame {
	return h.ring.Oldest()
}

// Newest returns the most recently appended frame, or nil if History is
// empty.
func (h *History) Newest() *Frame {
	return h.ring.Newest()
}

// StatusString renders "used/capacity, <span>" where span is the time
// between the oldest and newest retained frame, trimmed to the largest
// non-zero unit the way mjv_framebuf_status_string does: days and hours
// are only shown once there's at least one of them, and so on down to
// seconds, which always show. It returns "" when fewer than two frames
// are retained, since a single frame has no span to report against.
func (h *History) StatusString() string {
	used, capacity := h.Used(), h.Capacity()
	if used < 2 {
		return ""
	}
	oldest, newest := h.Oldest(), h.Newest()
	if oldest == nil || newest == nil {
		return fmt.Sprintf("%d/%d", used, capacity)
	}

	seconds := int(newest.Timestamp().Sub(oldest.Timestamp()) / time.Second)
	days, hours, minutes := 0, 0, 0
	if seconds >= 60 {
		minutes = seconds / 60
		seconds %= 60
	}
	if minutes >= 60 {
		hours = minutes / 60
		minutes %= 60
	}
	if hours >= 24 {
		days = hours / 24
		hours %= 24
	}

	switch {
	case days > 0:
		return fmt.Sprintf("%d/%d, %dd %dh %dm %ds", used, capacity, days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%d/%d, %dh %dm %ds", used, capacity, hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%d/%d, %dm %ds", used, capacity, minutes, seconds)
	default:
		return fmt.Sprintf("%d/%d, %ds", used, capacity, seconds)
	}
}
