// Package wifi drives the host's wireless interface through the OS network
// configuration utility (networksetup on macOS).
//
// Manager is stateless: every call re-queries the OS because association is
// an external resource that changes underneath the process. Its parsers work
// against the utility's plain-text output and only look for the documented
// substrings, so localized builds of the utility may not be recognized.
//
// Associator layers the join/leave workflow on top of Manager: it treats a
// reachable device as connected even when the SSID cannot be read, remembers
// the network the host was on before joining, and can return to it.
package wifi
