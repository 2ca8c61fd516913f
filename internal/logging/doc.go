// Package logging builds the slog logger used by the codeunify CLI.
//
// Human-readable records always go to stderr. When a log file is
// requested, JSON records are also written there through a size-rotating
// writer, which keeps a --verbose trace of a run around after the
// terminal output is gone.
package logging
