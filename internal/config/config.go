// Package config sets up the logging shared by the chopper frontends.
package config

import (
	"io"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the logger of a frontend. Debug enables the
// instruction trace of the VM, quiet drops everything below errors.
func CreateLogger(debug, quiet bool) *log.Logger {
	return newLogger(nil, debug, quiet)
}

// newLogger creates the logger writing to w, or to the default output if w
// is nil.
func newLogger(w io.Writer, debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	if w != nil {
		cfg.Output = w
	}
	return log.NewWithConfig(cfg)
}
