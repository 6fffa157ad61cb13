package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"agolink/internal/config"
	"agolink/internal/testsupport"
	"agolink/internal/upload"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	device     *fakeDevice
	// networkLog receives one line per network command invocation.
	networkLog string
	// ssidFile holds the SSID the stub interface is associated with.
	ssidFile string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	device := newFakeDevice(t)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithDeviceIP(device.host())}, opts...)...)
	cfg.Logging.Level = "error"
	base := testsupport.BaseDir(cfg)

	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		cfg:        cfg,
		configPath: filepath.Join(base, "agolink.toml"),
		baseDir:    base,
		device:     device,
		networkLog: filepath.Join(base, "network.log"),
		ssidFile:   filepath.Join(base, "ssid"),
	}
	cfg.Network.Command = env.writeNetworkStub(t)
	env.writeConfig(t)
	return env
}

// writeNetworkStub installs a shell script that answers the hardware-port,
// current-network, and association subcommands. Association rewrites the
// SSID file so later queries observe it.
func (e *cliTestEnv) writeNetworkStub(t *testing.T) string {
	t.Helper()
	script := `#!/bin/sh
echo "$*" >> "` + e.networkLog + `"
case "$1" in
-listallhardwareports)
	printf 'Hardware Port: Ethernet\nDevice: en1\n\nHardware Port: Wi-Fi\nDevice: en0\nEthernet Address: aa:bb:cc:dd:ee:ff\n'
	;;
-getairportnetwork)
	if [ -s "` + e.ssidFile + `" ]; then
		printf 'Current Wi-Fi Network: %s\n' "$(cat "` + e.ssidFile + `")"
	else
		echo "You are not associated with an AirPort network."
	fi
	;;
-setairportnetwork)
	printf '%s' "$3" > "` + e.ssidFile + `"
	;;
esac
exit 0
`
	path := filepath.Join(e.baseDir, "bin", "networksetup")
	testsupport.WriteFile(t, path, script)
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod network stub: %v", err)
	}
	return path
}

func (e *cliTestEnv) writeConfig(t *testing.T) {
	t.Helper()
	data, err := toml.Marshal(e.cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteFile(t, e.configPath, string(data))
}

// setSSID associates the stub interface with ssid.
func (e *cliTestEnv) setSSID(t *testing.T, ssid string) {
	t.Helper()
	testsupport.WriteFile(t, e.ssidFile, ssid)
}

// makeDeviceUnreachable points the config at a closed port so probes fail.
func (e *cliTestEnv) makeDeviceUnreachable(t *testing.T) {
	t.Helper()
	listener := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(listener.URL, "http://")
	listener.Close()
	e.cfg.Device.IP = addr
	e.writeConfig(t)
}

func (e *cliTestEnv) networkCalls(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.networkLog)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read network log: %v", err)
	}
	return string(data)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// legacyUploadPath is a compatibility endpoint the fake device accepts raw
// JSON posts on, regardless of failUploads.
const legacyUploadPath = "/legacy/upload"

// fakeDevice serves the program API of the device: uploads and deletes under
// the canonical path and a reachable root page.
type fakeDevice struct {
	mu           sync.Mutex
	programs     map[string][]byte
	requests     []string
	uploadStatus int
	server       *httptest.Server
}

func newFakeDevice(t *testing.T) *fakeDevice {
	t.Helper()
	d := &fakeDevice{programs: map[string][]byte{}}
	d.server = httptest.NewServer(http.HandlerFunc(d.serveHTTP))
	t.Cleanup(d.server.Close)
	return d
}

func (d *fakeDevice) host() string {
	return strings.TrimPrefix(d.server.URL, "http://")
}

func (d *fakeDevice) failUploads(status int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.uploadStatus = status
}

func (d *fakeDevice) program(name string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	body, ok := d.programs[name]
	return body, ok
}

func (d *fakeDevice) serveHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, r.Method+" "+r.URL.Path)

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, "AGO")
		return
	case r.URL.Path == legacyUploadPath && r.Method == http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		d.programs[legacyUploadPath] = body
		_, _ = io.WriteString(w, `{"ok":true}`)
		return
	}
	name, ok := strings.CutPrefix(r.URL.Path, upload.CanonicalPath+"/")
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut:
		if d.uploadStatus != 0 {
			w.WriteHeader(d.uploadStatus)
			_, _ = io.WriteString(w, `{"error":"rejected"}`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		d.programs[name] = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	case http.MethodDelete:
		if _, exists := d.programs[name]; !exists {
			http.NotFound(w, r)
			return
		}
		delete(d.programs, name)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
