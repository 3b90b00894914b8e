// Package logutil builds the zerolog loggers used throughout mdlist.
package logutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger at the given level. Logs are written as JSON lines to
// file if non-empty, otherwise in console form to stderr.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
// The returned closer must be called once logging is done.
func New(level, file string) (zerolog.Logger, func(), error) {
	return newLogger(level, file, os.Stderr)
}

func newLogger(level, file string, console io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: console, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = f.Close() }
		w = f
	}

	l := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)
	return l, closer, nil
}

var base atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	base.Store(&nop)
}

// SetDefault installs l as the logger that Component derives from, and as
// zerolog's global logger. Until it is called, component loggers discard
// everything.
func SetDefault(l zerolog.Logger) {
	base.Store(&l)
	log.Logger = l
}

// Component creates a sub-logger of the default logger tagged with a
// component name under the "cmp" key.
func Component(name string) zerolog.Logger {
	return base.Load().With().Str("cmp", name).Logger()
}
