// Package tracelog records upload diagnostics in an append-only text sink.
//
// Each Append writes one block headed by "=== upload <unix-seconds> ===",
// followed by one line per entry and a blank separator. The trace exists for
// post-hoc troubleshooting only; nothing reads it for control flow.
//
// FileSink guards appends with an advisory file lock so blocks written by
// concurrent processes never interleave mid-block. MemorySink serves tests.
package tracelog
