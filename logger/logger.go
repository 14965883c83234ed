// Package logger provides the single shared zerolog.Logger used across the
// prover. It mirrors the logger package shipped by gnark itself: a package
// level singleton, console-friendly by default, replaceable by a caller that
// embeds this module in a larger service.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log zerolog.Logger
)

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()
}

// Logger returns the shared logger. Safe for concurrent use.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetOutput redirects the logger to w, keeping the same level and fields.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Output(w)
}

// SetLevel adjusts the global log level (e.g. zerolog.Disabled to silence
// the prover entirely).
func SetLevel(lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Level(lvl)
}

// Disable silences all log output. Convenience over SetLevel(zerolog.Disabled).
func Disable() {
	SetLevel(zerolog.Disabled)
}
