package upload

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalPath is the device's custom program collection.
const CanonicalPath = "/api/files/programs/custom"

const filenamePrefix = "_P_C0_"

// NormalizeURL resolves endpoint against the device address. Absolute URLs
// pass through; rooted paths are joined to the host; anything else becomes a
// path segment under the host.
func NormalizeURL(ip, endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
		return endpoint
	case strings.HasPrefix(endpoint, "/"):
		return "http://" + ip + endpoint
	default:
		return "http://" + ip + "/" + endpoint
	}
}

// ProgramURL is the canonical resource URL for a device filename.
func ProgramURL(ip, filename string) string {
	return "http://" + ip + CanonicalPath + "/" + filename
}

// Token returns the low 32 bits of the nanosecond timestamp as eight hex
// digits.
func Token(now time.Time) string {
	return fmt.Sprintf("%08x", uint32(now.UnixNano()))
}

// DeviceFilename builds the name the device stores an uploaded program under.
func DeviceFilename(now time.Time) string {
	return filenamePrefix + Token(now) + ".txt"
}

func usesLegacyEndpoint(endpoint string) bool {
	endpoint = strings.TrimSpace(endpoint)
	return endpoint != "" && endpoint != CanonicalPath
}
