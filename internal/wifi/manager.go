package wifi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"agolink/internal/execrun"
	"agolink/internal/logging"
	"agolink/internal/services"
)

const (
	defaultCommand      = "networksetup"
	defaultProbeTimeout = 2 * time.Second
)

// Manager queries and changes the host's Wi-Fi association.
type Manager struct {
	command string
	runner  execrun.Runner
	probe   *http.Client
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithRunner injects a custom command runner (primarily for tests).
func WithRunner(runner execrun.Runner) Option {
	return func(m *Manager) {
		if runner != nil {
			m.runner = runner
		}
	}
}

// WithCommand overrides the network configuration binary.
func WithCommand(command string) Option {
	return func(m *Manager) {
		if command = strings.TrimSpace(command); command != "" {
			m.command = command
		}
	}
}

// WithProbeTimeout bounds the device reachability probe.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.probe.Timeout = timeout
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager constructs a Manager that shells out to networksetup by default.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		command: defaultCommand,
		runner:  execrun.New(),
		probe:   &http.Client{Timeout: defaultProbeTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(m.logger, "wifi")
	return m
}

// Command returns the network configuration binary in use.
func (m *Manager) Command() string {
	return m.command
}

// DiscoverInterface returns the device name of the Wi-Fi hardware port.
func (m *Manager) DiscoverInterface(ctx context.Context) (string, error) {
	result, err := m.runner.Run(ctx, m.command, "-listallhardwareports")
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "wifi", "list hardware ports", "run "+m.command, err)
	}
	device, ok := parseHardwarePorts(result.Stdout)
	if !ok {
		return "", services.Wrap(services.ErrNotFound, "wifi", "discover interface", "", ErrInterfaceNotFound)
	}
	m.logger.Debug("wifi interface discovered", logging.String("interface", device))
	return device, nil
}

// CurrentNetwork returns the SSID iface is associated with, or "" when it is
// not associated.
func (m *Manager) CurrentNetwork(ctx context.Context, iface string) (string, error) {
	result, err := m.runner.Run(ctx, m.command, "-getairportnetwork", iface)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "wifi", "read current network", "run "+m.command, err)
	}
	return parseCurrentNetwork(result)
}

// Connect associates iface with ssid. When a password is given and the first
// attempt fails, it retries once without it so networks whose credentials the
// OS already stores can still be joined.
func (m *Manager) Connect(ctx context.Context, iface, ssid, password string) error {
	args := []string{"-setairportnetwork", iface, ssid}
	if password != "" {
		args = append(args, password)
	}
	first, err := m.runner.Run(ctx, m.command, args...)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "wifi", "connect", "run "+m.command, err)
	}
	if joined(first) {
		m.logger.Info("wifi associated", logging.String("ssid", ssid), logging.String("interface", iface))
		return nil
	}
	outputs := []string{first.Combined()}

	if password != "" {
		m.logger.Debug("association failed with password, retrying with stored credentials",
			logging.String("ssid", ssid),
			logging.Int("exit_code", first.ExitCode),
		)
		second, err := m.runner.Run(ctx, m.command, "-setairportnetwork", iface, ssid)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "wifi", "connect", "run "+m.command, err)
		}
		if joined(second) {
			m.logger.Info("wifi associated using stored credentials", logging.String("ssid", ssid), logging.String("interface", iface))
			return nil
		}
		outputs = append(outputs, second.Combined())
	}
	return &ConnectionError{Op: "connect", SSID: ssid, Outputs: outputs}
}

// Reconnect returns iface to ssid. Without a password the command's exit
// status alone decides the outcome; with one it behaves like Connect.
func (m *Manager) Reconnect(ctx context.Context, iface, ssid, password string) error {
	if password != "" {
		return m.Connect(ctx, iface, ssid, password)
	}
	result, err := m.runner.Run(ctx, m.command, "-setairportnetwork", iface, ssid)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "wifi", "reconnect", "run "+m.command, err)
	}
	if !result.Success() {
		return &ConnectionError{Op: "reconnect", SSID: ssid, Outputs: []string{result.Combined()}}
	}
	m.logger.Info("wifi reconnected", logging.String("ssid", ssid), logging.String("interface", iface))
	return nil
}

// ProbeDevice reports whether http://ip answers with a success status. Any
// failure reads as unreachable.
func (m *Manager) ProbeDevice(ctx context.Context, ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ip, nil)
	if err != nil {
		return false
	}
	resp, err := m.probe.Do(req)
	if err != nil {
		m.logger.Debug("device probe failed", logging.String("ip", ip), logging.Error(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
