// Package logging assembles structured slog loggers and formatting helpers used
// across Play Beat.
//
// It owns the console/JSON handlers, the rotating log file, level parsing, and
// context helpers that tag log lines with request correlation IDs. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
