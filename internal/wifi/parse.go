package wifi

import (
	"strings"

	"agolink/internal/execrun"
)

var notConnectedPhrases = []string{
	"not associated",
	"not a wi-fi interface",
	"error obtaining wireless information",
}

var alreadyJoinedPhrases = []string{
	"already associated",
	"already connected",
}

// parseHardwarePorts finds the device name listed under the first Wi-Fi or
// AirPort hardware port. Only the lines up to the next "Hardware Port:" are
// eligible.
func parseHardwarePorts(output string) (string, bool) {
	armed := false
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.Contains(line, "Wi-Fi") || strings.Contains(line, "AirPort") {
			armed = true
			continue
		}
		if armed && strings.HasPrefix(line, "Device:") {
			if device := strings.TrimSpace(strings.TrimPrefix(line, "Device:")); device != "" {
				return device, true
			}
			armed = false
			continue
		}
		if armed && strings.HasPrefix(line, "Hardware Port:") {
			armed = false
		}
	}
	return "", false
}

// parseCurrentNetwork interprets -getairportnetwork output. Known
// not-connected replies yield an empty SSID without error.
func parseCurrentNetwork(result execrun.Result) (string, error) {
	line := strings.TrimSpace(result.Stdout)
	lower := strings.ToLower(line)
	for _, phrase := range notConnectedPhrases {
		if strings.Contains(lower, phrase) {
			return "", nil
		}
	}
	if _, ssid, ok := strings.Cut(line, ":"); ok {
		return strings.Trim(strings.TrimSpace(ssid), `"`), nil
	}
	if result.Success() {
		return "", nil
	}
	return "", &CommandError{Op: "read current network", Stdout: result.Stdout, Stderr: result.Stderr}
}

// joined reports whether an association command left the host on the network.
func joined(result execrun.Result) bool {
	if result.Success() {
		return true
	}
	combined := strings.ToLower(result.Combined())
	for _, phrase := range alreadyJoinedPhrases {
		if strings.Contains(combined, phrase) {
			return true
		}
	}
	return false
}
