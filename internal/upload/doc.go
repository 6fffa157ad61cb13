// Package upload pushes recipe payloads to the device over HTTP.
//
// The device firmware varies in which verb and path it accepts, so an upload
// runs an ordered list of attempts (POST, PUT, then an optional legacy POST)
// and stops at the first one the success classifier accepts. Every attempt is
// described in the diagnostic trace; only the aggregated FailedError reaches
// the caller when all of them miss.
//
// DeleteProgram removes a previously uploaded program by device filename.
package upload
