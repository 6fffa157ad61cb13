package wifi

import (
	"strings"

	"golang.org/x/text/cases"
)

// State is the association state derived from a fresh OS query.
type State int

const (
	StateUnknown State = iota
	StateDisconnected
	StateAssociating
	StateConnected
	StateAssociationFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateAssociating:
		return "associating"
	case StateConnected:
		return "connected"
	case StateAssociationFailed:
		return "association_failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name; unrecognized names read as StateUnknown.
func (s *State) UnmarshalText(text []byte) error {
	*s = StateUnknown
	for candidate := StateUnknown; candidate <= StateAssociationFailed; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			break
		}
	}
	return nil
}

// Status is a snapshot of the host's relationship to the device network.
type Status struct {
	State     State  `json:"state"`
	Interface string `json:"interface,omitempty"`
	SSID      string `json:"ssid,omitempty"`
	// Reachable is meaningful only when Probed is set.
	Reachable bool   `json:"reachable"`
	Probed    bool   `json:"probed"`
	Message   string `json:"message,omitempty"`
}

// normalizeSSID strips quotes and whitespace and case-folds. Casers are
// stateful, so each call gets its own.
func normalizeSSID(value string) string {
	return cases.Fold().String(strings.TrimSpace(strings.Trim(value, `"`)))
}

// SSIDMatches reports whether current names the target network. Surrounding
// quotes and case are ignored and either name may contain the other. Empty
// names never match.
func SSIDMatches(current, target string) bool {
	c := normalizeSSID(current)
	t := normalizeSSID(target)
	if c == "" || t == "" {
		return false
	}
	return c == t || strings.Contains(c, t) || strings.Contains(t, c)
}
