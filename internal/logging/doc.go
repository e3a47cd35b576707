// Package logging assembles the structured slog loggers used across the
// pipeline.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes context helpers so pipeline code automatically tags log lines with
// run IDs and render paths. A no-op logger is provided for tests and wiring
// code that cannot fail.
package logging
