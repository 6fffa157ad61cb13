// Package main hosts the agolink CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into device operations:
// joining and leaving the device's Wi-Fi network, uploading recipes as
// development programs, deleting programs, and inspecting the upload trace
// and local upload ledger. Configuration resolution, logger setup, and the
// lazily opened history store live in commandContext so subcommands only
// deal with presentation.
//
// New behaviour belongs in the internal packages first; commands here should
// stay thin wrappers that parse flags and render results.
package main
