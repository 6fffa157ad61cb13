package main

import (
	"encoding/json"
	"testing"
)

func TestWifiInterfaceAndCurrent(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "wifi", "interface")
	if err != nil {
		t.Fatalf("wifi interface: %v", err)
	}
	if out != "en0\n" {
		t.Fatalf("unexpected interface output %q", out)
	}

	out, _, err = runCLI(t, env, "wifi", "current")
	if err != nil {
		t.Fatalf("wifi current: %v", err)
	}
	requireContains(t, out, "Not connected")

	env.setSSID(t, "HomeNet")
	out, _, err = runCLI(t, env, "wifi", "current", "--interface", "en0")
	if err != nil {
		t.Fatalf("wifi current: %v", err)
	}
	if out != "HomeNet\n" {
		t.Fatalf("unexpected current network %q", out)
	}
}

func TestWifiConnectAndReconnect(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "wifi", "connect", "Lab", "--password", "secret")
	if err != nil {
		t.Fatalf("wifi connect: %v", err)
	}
	requireContains(t, out, "Connected to Lab")
	requireContains(t, env.networkCalls(t), "-setairportnetwork en0 Lab secret")

	out, _, err = runCLI(t, env, "wifi", "reconnect", "HomeNet")
	if err != nil {
		t.Fatalf("wifi reconnect: %v", err)
	}
	requireContains(t, out, "Reconnected to HomeNet")
}

func TestWifiProbe(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "wifi", "probe")
	if err != nil {
		t.Fatalf("wifi probe: %v", err)
	}
	requireContains(t, out, env.device.host()+" reachable")

	env.makeDeviceUnreachable(t)
	out, _, err = runCLI(t, env, "wifi", "probe")
	if err != nil {
		t.Fatalf("wifi probe: %v", err)
	}
	requireContains(t, out, "unreachable")
}

func TestJoinSkipsAssociationWhenDeviceReachable(t *testing.T) {
	env := setupCLITestEnv(t)
	env.setSSID(t, "HomeNet")

	out, _, err := runCLI(t, env, "wifi", "join")
	if err != nil {
		t.Fatalf("wifi join: %v", err)
	}
	requireContains(t, out, "AGO is reachable")
	requireNotContains(t, env.networkCalls(t), "-setairportnetwork")
}

func TestJoinThenLeaveRestoresPreviousNetwork(t *testing.T) {
	env := setupCLITestEnv(t)
	env.makeDeviceUnreachable(t)
	env.setSSID(t, "HomeNet")

	out, _, err := runCLI(t, env, "wifi", "join")
	if err != nil {
		t.Fatalf("wifi join: %v", err)
	}
	requireContains(t, out, "Connected to AGO")
	requireContains(t, env.networkCalls(t), "-setairportnetwork en0 AGO 12345678")

	out, _, err = runCLI(t, env, "wifi", "status", "--json")
	if err != nil {
		t.Fatalf("wifi status: %v", err)
	}
	var status struct {
		State string `json:"state"`
		SSID  string `json:"ssid"`
	}
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode status: %v\n%s", err, out)
	}
	if status.State != "connected" || status.SSID != "AGO" {
		t.Fatalf("unexpected status %+v", status)
	}

	// A separate invocation must still know the previous network.
	out, _, err = runCLI(t, env, "wifi", "leave")
	if err != nil {
		t.Fatalf("wifi leave: %v", err)
	}
	requireContains(t, out, "Reconnected to HomeNet")

	out, _, err = runCLI(t, env, "wifi", "current")
	if err != nil {
		t.Fatalf("wifi current: %v", err)
	}
	if out != "HomeNet\n" {
		t.Fatalf("expected to be back on HomeNet, got %q", out)
	}
}

func TestLeaveWithoutRememberedNetwork(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "wifi", "leave")
	if err != nil {
		t.Fatalf("wifi leave: %v", err)
	}
	requireContains(t, out, "Disconnected from AGO. Reconnect to your WiFi manually.")
}
