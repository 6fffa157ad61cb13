// Package logging assembles structured slog loggers and formatting helpers
// used across agolink components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so device operations are
// tagged with correlation IDs, operation names, and device addresses. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
