package wifi

import (
	"errors"
	"fmt"
	"strings"

	"agolink/internal/services"
)

// ErrInterfaceNotFound reports that no Wi-Fi hardware port was listed.
var ErrInterfaceNotFound = errors.New("could not find Wi-Fi interface")

// CommandError carries the output of a network command that failed.
type CommandError struct {
	Op     string
	Stdout string
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, joinOutput(e.Stdout, e.Stderr))
}

// Is classifies command failures as external tool errors.
func (e *CommandError) Is(target error) bool {
	return target == services.ErrExternalTool
}

// ConnectionError reports an association that did not take. Outputs holds the
// combined stdout/stderr of every attempt in order.
type ConnectionError struct {
	Op      string
	SSID    string
	Outputs []string
}

func (e *ConnectionError) Error() string {
	parts := make([]string, 0, len(e.Outputs))
	for _, out := range e.Outputs {
		if out = strings.TrimSpace(out); out != "" {
			parts = append(parts, out)
		}
	}
	detail := "no output"
	if len(parts) > 0 {
		detail = strings.Join(parts, "; ")
	}
	return fmt.Sprintf("failed to %s to %s: %s", e.Op, e.SSID, detail)
}

// Is classifies association failures as external tool errors.
func (e *ConnectionError) Is(target error) bool {
	return target == services.ErrExternalTool
}

func joinOutput(stdout, stderr string) string {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	switch {
	case stdout == "" && stderr == "":
		return "no output"
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + " " + stderr
	}
}
