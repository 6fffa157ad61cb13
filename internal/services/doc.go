// Package services defines shared utilities consumed by the device-facing
// components and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers, operation names,
//     and device addresses for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (bad input vs. unreachable device) without string matching.
//
// Use these helpers when wiring new components so operational behaviour
// (error handling, observability) stays uniform.
package services
