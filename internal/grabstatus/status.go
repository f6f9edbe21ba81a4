// Package grabstatus holds the terminal status codes and sentinel error
// kinds shared by the source and grabber packages, the Go counterpart of
// mjv_grabber.h's enum mjv_grabber_status plus the connection-time failure
// modes source_network.c reports through errno.
package grabstatus

import "github.com/nuclio/errors"

// Status is the terminal outcome of one grabber run, returned instead of
// mjv_grabber_run's enum mjv_grabber_status.
type Status int

const (
	// Success means the source closed normally after delivering well-formed
	// data (currently unreachable for a live stream, but reserved for a
	// source that legitimately runs out of input without error).
	Success Status = iota
	// Timeout means no data arrived from the source within the read deadline.
	Timeout
	// ReadError means the source's Read returned an error other than a
	// timeout or cancellation, the HTTP response status was not 200, or
	// (from worker.Run) the source could not be opened.
	ReadError
	// PrematureEOF means the source reached end of stream; any EOF ends a
	// run this way, whether it falls mid-frame or between frames.
	PrematureEOF
	// CorruptHeader means the HTTP banner or multipart headers didn't parse.
	CorruptHeader
	// Canceled means the supervisor requested shutdown via the self-pipe
	// while the grabber was blocked waiting on the source.
	Canceled
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case ReadError:
		return "read error"
	case PrematureEOF:
		return "premature eof"
	case CorruptHeader:
		return "corrupt header"
	case Canceled:
		return "canceled"
	default:
		return "unknown status"
	}
}

// Sentinel error kinds wrapped by source, config and grabber failures. The
// grabber's Run checks source read errors against ErrCanceled and
// ErrTimeout with errors.Is to pick its terminal Status.
var (
	ErrInvalidConfig = errors.New("invalid source configuration")
	ErrResolve       = errors.New("could not resolve host")
	ErrConnect       = errors.New("could not connect to source")
	ErrWrite         = errors.New("could not write request to source")
	ErrFileOpen      = errors.New("could not open file source")
	ErrCorruptHeader = errors.New("corrupt or unexpected header")
	ErrRead          = errors.New("read from source failed")
	ErrTimeout       = errors.New("read from source timed out")
	ErrPrematureEOF  = errors.New("source closed before frame was complete")
	ErrCanceled      = errors.New("canceled")
)
