package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alnah/go-specmark"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the converter pool used by convert.
	NewPool func(size int, opts ...specmark.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newPoolAdapter,
	}
}

// newLogger returns the diagnostics logger for a command: a text handler
// on stderr at Debug level when verbose, nothing otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
