// Package selfpipe is the channel-based substitute for the POSIX self-pipe
// trick: a cancel signal that a blocking read loop can wait on alongside its
// real source, without installing a signal handler. mjv's selfpipe.c pairs a
// nonblocking pipe's read end with pselect(); here the read end is a channel
// that Done() exposes, and closing it is the "byte written and caught" event.
package selfpipe

import "sync"

// Read is the listening half of a self-pipe pair. Done returns a channel
// that is closed exactly once, when the paired Write's SignalAndClose is
// called — analogous to the read fd becoming readable in selfpipe_read_close.
type Read struct {
	done <-chan struct{}
}

// Done returns the cancellation channel. A grabber's read loop selects on
// this alongside its source read and timeout, exactly as mjv_grabber_run
// selects on the self-pipe's read fd alongside the source fd.
func (r *Read) Done() <-chan struct{} {
	return r.done
}

// Write is the signaling half of a self-pipe pair.
type Write struct {
	once sync.Once
	ch   chan struct{}
}

// SignalAndClose closes the paired Read's Done channel, waking anything
// blocked on it. Idempotent: repeated calls are no-ops, matching
// selfpipe_write_close's fd >= 0 guard against writing an already-closed
// write end.
func (w *Write) SignalAndClose() {
	w.once.Do(func() {
		close(w.ch)
	})
}

// Pair creates a connected Write/Read pair, the selfpipe_pair equivalent.
func Pair() (*Write, *Read) {
	ch := make(chan struct{})
	return &Write{ch: ch}, &Read{done: ch}
}
