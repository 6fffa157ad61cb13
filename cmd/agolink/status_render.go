package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"agolink/internal/preflight"
	"agolink/internal/wifi"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 18
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	badge := "[" + statusKindLabel(kind) + "]"
	if message != "" {
		badge += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", badge)
	if colorize {
		return statusKindColor(kind) + line + ansiReset
	}
	return line
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiBlue
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// preflightKind grades one readiness check. An unreachable device only
// warns: the host may simply not have joined the device network yet.
func preflightKind(result preflight.Result) statusKind {
	switch {
	case result.Passed:
		return statusOK
	case result.Name == preflight.DeviceCheckName:
		return statusWarn
	default:
		return statusError
	}
}

func wifiStatusLines(status wifi.Status, target string, colorize bool) []string {
	kind := statusWarn
	switch status.State {
	case wifi.StateConnected:
		kind = statusOK
	case wifi.StateAssociationFailed:
		kind = statusError
	}

	stateText := status.State.String()
	if status.Message != "" {
		stateText += " (" + status.Message + ")"
	}
	lines := []string{renderStatusLine("Association", kind, stateText, colorize)}

	iface := status.Interface
	if iface == "" {
		iface = "not found"
	}
	lines = append(lines, renderStatusLine("Interface", statusInfo, iface, colorize))

	network := status.SSID
	if network == "" {
		network = "none"
	}
	if target != "" {
		network += " (device network " + target + ")"
	}
	lines = append(lines, renderStatusLine("Network", statusInfo, network, colorize))

	if status.Probed {
		probeKind := statusWarn
		if status.Reachable {
			probeKind = statusOK
		}
		lines = append(lines, renderStatusLine("Reachable", probeKind, yesNo(status.Reachable), colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
