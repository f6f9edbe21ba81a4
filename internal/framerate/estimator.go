// Package framerate estimates frames-per-second from a short history of
// frame arrival times, the Go counterpart of mjv_framerate.c.
package framerate

import (
	"time"

	"github.com/mjpeggrab/mjpeggrab/internal/ringbuf"
)

// memory is the number of timestamps retained, matching
// mjv_framerate.c's FRAMERATE_MEMORY.
const memory = 15

// Stalled is returned by Estimate when there isn't enough history yet, or
// the gap since the last frame is too large to trust any estimate —
// mjv_framerate_estimate's -1.0 sentinel.
const Stalled = -1.0

// Estimator tracks the last 15 frame arrival times and estimates fps.
// Not safe for concurrent use; callers serialize access the same way a
// grabber owns its frame history.
type Estimator struct {
	history *ringbuf.Ring[time.Time]
}

// New creates an Estimator with empty history.
func New() *Estimator {
	return &Estimator{history: ringbuf.New[time.Time](memory, nil)}
}

// Insert records a frame arrival, evicting the oldest once the history is
// full — mjv_framerate_insert_datapoint's memmove-and-prepend, reframed as
// a ring append since only relative order (oldest vs newest) matters.
func (e *Estimator) Insert(ts time.Time) {
	e.history.Append(ts)
}

// Estimate returns frames-per-second estimated over the retained history,
// or Stalled if there isn't enough data or the feed appears to have
// stopped. now is the wall clock to compare the newest timestamp against;
// callers pass time.Now() in production and a fixed time in tests.
//
// Mirrors mjv_framerate_estimate's algorithm, minus its "wall clock
// unavailable" step, since now is passed in:
//  1. Fewer than 2 datapoints: Stalled.
//  2. diffAmongFrames = newest - oldest.
//  3. diffWithNow = now - newest.
//  4. If diffWithNow < diffAmongFrames, frames are still arriving at the
//     recent pace: return (num-1)/diffAmongFrames.
//  5. Else there's a gap since the last frame. If that gap exceeds 5x
//     diffAmongFrames, the feed has stalled: return Stalled.
//  6. Otherwise rebase the estimate against the wall clock using the
//     oldest timestamp: return num/diffWithOldest.
func (e *Estimator) Estimate(now time.Time) float64 {
	num := e.history.Used()
	if num <= 1 {
		return Stalled
	}

	newest := e.history.Newest()
	oldest := e.history.Oldest()
	diffAmongFrames := newest.Sub(oldest).Seconds()
	if diffAmongFrames <= 0 {
		return Stalled
	}

	diffWithNow := now.Sub(newest).Seconds()
	if diffWithNow < diffAmongFrames {
		return float64(num-1) / diffAmongFrames
	}

	if diffWithNow > diffAmongFrames*5.0 {
		return Stalled
	}

	diffWithOldest := now.Sub(oldest).Seconds()
	if diffWithOldest <= 0 {
		return Stalled
	}
	return float64(num) / diffWithOldest
}
