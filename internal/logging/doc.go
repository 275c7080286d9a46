// Package logging assembles structured slog loggers for undisorder.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// context helpers that tag log lines with the import run, media type and
// source directory being processed. A no-op logger is provided for tests and
// wiring code that must not fail.
package logging
