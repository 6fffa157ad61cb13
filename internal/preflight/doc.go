// Package preflight provides readiness checks for the paths, executables, and
// device endpoint agolink depends on.
//
// The CLI "agolink status" command runs RunAll and renders one row per
// result. Individual checks are also used by commands that want to fail fast
// (for example upload refuses to start when the state directory is not
// writable).
package preflight
