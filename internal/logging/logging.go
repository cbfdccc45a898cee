// Package logging builds the diagnostic logger shared by the commands and the
// terminal UI.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Debug enables debug level output;
// otherwise diagnostics are discarded so they never mix with command output.
func New(w io.Writer, debug bool) *slog.Logger {
	if !debug || w == nil {
		return Discard()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
