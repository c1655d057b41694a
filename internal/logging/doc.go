// Package logging assembles structured slog loggers and formatting helpers used
// across the tagger.
//
// It owns the configurable console/JSON handlers, fans output to stdout and the
// append-only log file, rotates that file when it grows past the configured
// size, and prunes rotated files after the retention window. Context helpers
// stamp cycle and movie identifiers onto log lines.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
