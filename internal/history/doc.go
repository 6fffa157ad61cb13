// Package history persists what agolink has pushed to the device.
//
// The store is a small SQLite database in the state directory holding two
// tables: an upload ledger (one row per program the device accepted) and a
// key/value settings table that remembers the network the host was on before
// joining the device. The device exposes no listing call, so the ledger is
// the source for `agolink programs list`.
package history
