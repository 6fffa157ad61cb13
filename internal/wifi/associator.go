package wifi

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"agolink/internal/logging"
)

// NetworkMemory persists the network the host was on before joining the
// device, so Leave can return to it in a later process.
type NetworkMemory interface {
	SetPreviousSSID(ctx context.Context, ssid string) error
	PreviousSSID(ctx context.Context) (string, error)
	ClearPreviousSSID(ctx context.Context) error
}

// Target identifies the device network.
type Target struct {
	SSID          string
	Password      string
	IP            string
	AutoReconnect bool
}

// Associator runs the join and leave workflows against a Manager.
type Associator struct {
	manager *Manager
	target  Target
	memory  NetworkMemory
	logger  *slog.Logger
}

// NewAssociator wires an Associator. A nil memory keeps the previous network
// for the lifetime of the Associator only.
func NewAssociator(manager *Manager, target Target, memory NetworkMemory, logger *slog.Logger) *Associator {
	if memory == nil {
		memory = &memoryNetwork{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Associator{
		manager: manager,
		target:  target,
		memory:  memory,
		logger:  logging.NewComponentLogger(logger, "wifi"),
	}
}

// Status reports whether the host can talk to the device. A matching SSID is
// enough; otherwise the device is probed directly so manual joins and
// unreadable interfaces are still recognized.
func (a *Associator) Status(ctx context.Context) Status {
	iface, err := a.manager.DiscoverInterface(ctx)
	if err != nil {
		a.logger.Debug("no wifi interface, probing device", logging.Error(err))
		return a.probed(ctx, Status{})
	}

	status := Status{Interface: iface}
	ssid, err := a.manager.CurrentNetwork(ctx, iface)
	if err != nil {
		a.logger.Debug("current network unreadable, probing device", logging.Error(err))
		return a.probed(ctx, status)
	}
	status.SSID = ssid
	if SSIDMatches(ssid, a.target.SSID) {
		status.State = StateConnected
		return status
	}
	return a.probed(ctx, status)
}

// Join associates the host with the device network unless it can already
// reach the device. The network in use beforehand is remembered for Leave.
func (a *Associator) Join(ctx context.Context) (Status, error) {
	iface, err := a.manager.DiscoverInterface(ctx)
	if err != nil {
		if a.manager.ProbeDevice(ctx, a.target.IP) {
			return Status{State: StateConnected, Reachable: true, Probed: true, Message: "AGO is reachable"}, nil
		}
		return Status{State: StateAssociationFailed, Probed: true, Message: "WiFi interface not found"}, err
	}

	status := Status{Interface: iface}
	current, err := a.manager.CurrentNetwork(ctx, iface)
	if err != nil {
		a.logger.Debug("current network unreadable before join", logging.Error(err))
		current = ""
	}
	status.SSID = current

	if SSIDMatches(current, a.target.SSID) {
		status.State = StateConnected
		status.Message = "Already connected to AGO"
		return status, nil
	}
	if a.manager.ProbeDevice(ctx, a.target.IP) {
		status.State = StateConnected
		status.Reachable, status.Probed = true, true
		status.Message = "AGO is reachable"
		return status, nil
	}

	if current != "" {
		if err := a.memory.SetPreviousSSID(ctx, current); err != nil {
			logging.WarnWithContext(a.logger, "previous network not saved", "previous_ssid_save_failed",
				logging.Error(err),
				logging.String("ssid", current),
				logging.String(logging.FieldImpact, "leave will not restore the previous network"),
			)
		}
	}

	a.logger.Info("joining device network",
		logging.String("state", StateAssociating.String()),
		logging.String("ssid", a.target.SSID),
		logging.String("interface", iface),
	)
	connectErr := a.manager.Connect(ctx, iface, a.target.SSID, a.target.Password)
	if connectErr == nil {
		status.State = StateConnected
		status.SSID = a.target.SSID
		status.Message = "Connected to AGO"
		return status, nil
	}

	// The command can report failure after the association actually happened.
	if ssid, err := a.manager.CurrentNetwork(ctx, iface); err == nil {
		status.SSID = ssid
		if SSIDMatches(ssid, a.target.SSID) {
			status.State = StateConnected
			status.Message = "Connected to AGO"
			return status, nil
		}
	}
	if a.manager.ProbeDevice(ctx, a.target.IP) {
		status.State = StateConnected
		status.Reachable, status.Probed = true, true
		status.Message = "Connected to AGO"
		return status, nil
	}

	status.State = StateAssociationFailed
	status.Probed = true
	status.Message = "Connection failed: " + connectErr.Error()
	logging.WarnWithContext(a.logger, "device network join failed", "wifi_join_failed",
		logging.Error(connectErr),
		logging.String("ssid", a.target.SSID),
		logging.String(logging.FieldErrorHint, "check device.ssid and device.password"),
		logging.String(logging.FieldImpact, "uploads cannot reach the device"),
	)
	return status, connectErr
}

// Leave returns the host to the remembered network when auto-reconnect is
// enabled. Otherwise the user is told to reconnect manually.
func (a *Associator) Leave(ctx context.Context) (Status, error) {
	iface, err := a.manager.DiscoverInterface(ctx)
	if err != nil {
		return Status{State: StateUnknown}, err
	}
	status := Status{Interface: iface, State: StateDisconnected}

	previous := ""
	if a.target.AutoReconnect {
		previous, err = a.memory.PreviousSSID(ctx)
		if err != nil {
			logging.WarnWithContext(a.logger, "previous network unavailable", "previous_ssid_read_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "previous network not restored"),
			)
			previous = ""
		}
	}
	previous = strings.TrimSpace(previous)
	if previous == "" {
		status.Message = "Disconnected from AGO. Reconnect to your WiFi manually."
		return status, nil
	}

	if err := a.manager.Reconnect(ctx, iface, previous, ""); err != nil {
		status.Message = "Failed to reconnect"
		return status, err
	}
	if err := a.memory.ClearPreviousSSID(ctx); err != nil {
		a.logger.Debug("previous network not cleared", logging.Error(err))
	}
	status.SSID = previous
	status.Message = "Reconnected to " + previous
	return status, nil
}

func (a *Associator) probed(ctx context.Context, status Status) Status {
	status.Probed = true
	status.Reachable = a.manager.ProbeDevice(ctx, a.target.IP)
	if status.Reachable {
		status.State = StateConnected
	} else {
		status.State = StateDisconnected
	}
	return status
}

type memoryNetwork struct {
	mu   sync.Mutex
	ssid string
}

func (m *memoryNetwork) SetPreviousSSID(_ context.Context, ssid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ssid = ssid
	return nil
}

func (m *memoryNetwork) PreviousSSID(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ssid, nil
}

func (m *memoryNetwork) ClearPreviousSSID(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ssid = ""
	return nil
}
