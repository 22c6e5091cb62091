// Package logging contains the singleton logger used globally across forge.
// It deliberately has little else since it's a dependency of nearly every package.
package logging

import (
	"gopkg.in/op/go-logging.v1"
)

// Log is the singleton logger instance.
var Log = logging.MustGetLogger("forge")

// Level re-exports the underlying library type.
type Level = logging.Level

// Re-exports of the log levels we use.
const (
	CRITICAL = logging.CRITICAL
	ERROR    = logging.ERROR
	WARNING  = logging.WARNING
	NOTICE   = logging.NOTICE
	INFO     = logging.INFO
	DEBUG    = logging.DEBUG
)
