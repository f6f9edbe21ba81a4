// Package grablog wires up structured logging for the grabber fleet,
// grounded on how sink/mjpeg and trigger/mjpeg obtain a
// github.com/nuclio/logger.Logger in the retrieved serverless processor
// pack: a concrete github.com/nuclio/zap logger handed around behind the
// nuclio/logger interface.
package grablog

import (
	"github.com/nuclio/logger"
	nucliozap "github.com/nuclio/zap"
)

// New creates a named logger. level is accepted for config-shape parity
// with other ambient-stack constructors but is currently unused:
// NewNuclioZapTest is the only nuclio/zap constructor signature attested
// anywhere in the retrieved pack, and it doesn't take one.
func New(name, level string) (logger.Logger, error) {
	_ = level
	return nucliozap.NewNuclioZapTest(name)
}
