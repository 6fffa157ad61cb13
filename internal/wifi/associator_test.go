package wifi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"agolink/internal/wifi"
)

type recordingMemory struct {
	previous string
	sets     int
	clears   int
}

func (m *recordingMemory) SetPreviousSSID(_ context.Context, ssid string) error {
	m.previous = ssid
	m.sets++
	return nil
}

func (m *recordingMemory) PreviousSSID(context.Context) (string, error) {
	return m.previous, nil
}

func (m *recordingMemory) ClearPreviousSSID(context.Context) error {
	m.previous = ""
	m.clears++
	return nil
}

func newAssociator(runner *stubRunner, ip string, memory wifi.NetworkMemory, autoReconnect bool) *wifi.Associator {
	target := wifi.Target{SSID: "AGO", Password: "12345678", IP: ip, AutoReconnect: autoReconnect}
	return wifi.NewAssociator(wifi.NewManager(wifi.WithRunner(runner)), target, memory, nil)
}

func TestStatusWithoutInterfaceFallsBackToProbe(t *testing.T) {
	runner := newStubRunner().queue("-listallhardwareports", ok("Hardware Port: Ethernet\nDevice: en1\n"))
	status := newAssociator(runner, reachableIP(t, http.StatusOK), nil, false).Status(context.Background())
	if status.State != wifi.StateConnected || !status.Probed || !status.Reachable {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestStatusMatchingSSIDSkipsProbe(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", ok("Current Wi-Fi Network: AGO-12AB"))
	status := newAssociator(runner, unreachableIP(t), nil, false).Status(context.Background())
	if status.State != wifi.StateConnected || status.Probed {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.Interface != "en0" || status.SSID != "AGO-12AB" {
		t.Fatalf("unexpected identity %+v", status)
	}
}

func TestStatusOtherNetworkProbes(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", ok("Current Wi-Fi Network: HomeNet"))
	status := newAssociator(runner, unreachableIP(t), nil, false).Status(context.Background())
	if status.State != wifi.StateDisconnected || !status.Probed || status.SSID != "HomeNet" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestStatusReadErrorFallsBackToProbe(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", failed("", "permission denied"))
	status := newAssociator(runner, reachableIP(t, http.StatusOK), nil, false).Status(context.Background())
	if status.State != wifi.StateConnected || !status.Reachable {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestJoinAlreadyConnected(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", ok(`Current Wi-Fi Network: "ago"`))
	memory := &recordingMemory{}
	status, err := newAssociator(runner, unreachableIP(t), memory, true).Join(context.Background())
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if status.State != wifi.StateConnected || status.Message != "Already connected to AGO" {
		t.Fatalf("unexpected status %+v", status)
	}
	if len(runner.Calls("-setairportnetwork")) != 0 || memory.sets != 0 {
		t.Fatal("no association or memory write expected")
	}
}

func TestJoinReachableDeviceSkipsAssociation(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", ok("Current Wi-Fi Network: HomeNet"))
	status, err := newAssociator(runner, reachableIP(t, http.StatusOK), nil, true).Join(context.Background())
	if err != nil || status.Message != "AGO is reachable" {
		t.Fatalf("unexpected result %+v, %v", status, err)
	}
	if len(runner.Calls("-setairportnetwork")) != 0 {
		t.Fatal("no association expected")
	}
}

func TestJoinRemembersPreviousNetwork(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", ok("Current Wi-Fi Network: HomeNet")).
		queue("-setairportnetwork", ok(""))
	memory := &recordingMemory{}
	status, err := newAssociator(runner, unreachableIP(t), memory, true).Join(context.Background())
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if status.State != wifi.StateConnected || status.SSID != "AGO" {
		t.Fatalf("unexpected status %+v", status)
	}
	if memory.previous != "HomeNet" {
		t.Fatalf("expected HomeNet remembered, got %q", memory.previous)
	}
	calls := runner.Calls("-setairportnetwork")
	if len(calls) != 1 || calls[0][4] != "12345678" {
		t.Fatalf("expected password association, got %v", calls)
	}
}

func TestJoinRecoversWhenCommandFailsButAssociationHappened(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", ok("You are not associated with an AirPort network."), ok("Current Wi-Fi Network: AGO")).
		queue("-setairportnetwork", failed("timeout", ""), failed("timeout", ""))
	memory := &recordingMemory{}
	status, err := newAssociator(runner, unreachableIP(t), memory, true).Join(context.Background())
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if status.State != wifi.StateConnected || status.Message != "Connected to AGO" {
		t.Fatalf("unexpected status %+v", status)
	}
	if memory.sets != 0 {
		t.Fatal("empty current network should not be remembered")
	}
}

func TestJoinFailure(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-getairportnetwork", ok("Current Wi-Fi Network: HomeNet"), ok("Current Wi-Fi Network: HomeNet")).
		queue("-setairportnetwork", failed("Failed to join network AGO.", ""), failed("Could not find network AGO.", ""))
	status, err := newAssociator(runner, unreachableIP(t), nil, true).Join(context.Background())

	var connErr *wifi.ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
	if status.State != wifi.StateAssociationFailed {
		t.Fatalf("expected association failure, got %+v", status)
	}
}

func TestJoinWithoutInterface(t *testing.T) {
	runner := newStubRunner().queue("-listallhardwareports", ok(""))
	status, err := newAssociator(runner, unreachableIP(t), nil, true).Join(context.Background())
	if !errors.Is(err, wifi.ErrInterfaceNotFound) {
		t.Fatalf("expected ErrInterfaceNotFound, got %v", err)
	}
	if status.State != wifi.StateAssociationFailed {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestLeaveReconnectsToPreviousNetwork(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-setairportnetwork", ok(""))
	memory := &recordingMemory{previous: "HomeNet"}
	status, err := newAssociator(runner, unreachableIP(t), memory, true).Leave(context.Background())
	if err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	if status.Message != "Reconnected to HomeNet" || status.State != wifi.StateDisconnected {
		t.Fatalf("unexpected status %+v", status)
	}
	calls := runner.Calls("-setairportnetwork")
	if len(calls) != 1 || len(calls[0]) != 4 || calls[0][3] != "HomeNet" {
		t.Fatalf("expected passwordless reconnect, got %v", calls)
	}
	if memory.previous != "" || memory.clears != 1 {
		t.Fatal("expected remembered network to be cleared")
	}
}

func TestLeaveWithoutAutoReconnect(t *testing.T) {
	runner := newStubRunner().queue("-listallhardwareports", ok(wifiPorts))
	memory := &recordingMemory{previous: "HomeNet"}
	status, err := newAssociator(runner, unreachableIP(t), memory, false).Leave(context.Background())
	if err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	if status.Message != "Disconnected from AGO. Reconnect to your WiFi manually." {
		t.Fatalf("unexpected message %q", status.Message)
	}
	if len(runner.Calls("-setairportnetwork")) != 0 || memory.previous != "HomeNet" {
		t.Fatal("no reconnect expected")
	}
}

func TestLeaveReconnectFailure(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts)).
		queue("-setairportnetwork", failed("", "Could not find network HomeNet."))
	memory := &recordingMemory{previous: "HomeNet"}
	status, err := newAssociator(runner, unreachableIP(t), memory, true).Leave(context.Background())
	if err == nil || status.Message != "Failed to reconnect" {
		t.Fatalf("expected reconnect failure, got %+v, %v", status, err)
	}
	if memory.previous != "HomeNet" {
		t.Fatal("previous network should be kept after a failed reconnect")
	}
}

func TestAssociatorDefaultMemory(t *testing.T) {
	runner := newStubRunner().
		queue("-listallhardwareports", ok(wifiPorts), ok(wifiPorts)).
		queue("-getairportnetwork", ok("Current Wi-Fi Network: Office")).
		queue("-setairportnetwork", ok(""), ok(""))
	associator := newAssociator(runner, unreachableIP(t), nil, true)
	if _, err := associator.Join(context.Background()); err != nil {
		t.Fatalf("Join: %v", err)
	}
	status, err := associator.Leave(context.Background())
	if err != nil || status.Message != "Reconnected to Office" {
		t.Fatalf("unexpected leave result %+v, %v", status, err)
	}
}
