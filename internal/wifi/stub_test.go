package wifi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"agolink/internal/execrun"
)

type reply struct {
	result execrun.Result
	err    error
}

// stubRunner replays queued replies per networksetup subcommand.
type stubRunner struct {
	mu      sync.Mutex
	replies map[string][]reply
	calls   [][]string
}

func newStubRunner() *stubRunner {
	return &stubRunner{replies: make(map[string][]reply)}
}

func (s *stubRunner) queue(subcommand string, replies ...reply) *stubRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[subcommand] = append(s.replies[subcommand], replies...)
	return s
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) (execrun.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, append([]string{name}, args...))
	if len(args) == 0 {
		return execrun.Result{}, errors.New("no subcommand")
	}
	pending := s.replies[args[0]]
	if len(pending) == 0 {
		return execrun.Result{}, fmt.Errorf("unexpected call %s %s", name, strings.Join(args, " "))
	}
	s.replies[args[0]] = pending[1:]
	return pending[0].result, pending[0].err
}

func (s *stubRunner) Calls(subcommand string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [][]string
	for _, call := range s.calls {
		if len(call) > 1 && call[1] == subcommand {
			out = append(out, call)
		}
	}
	return out
}

func ok(stdout string) reply {
	return reply{result: execrun.Result{Stdout: stdout}}
}

func failed(stdout, stderr string) reply {
	return reply{result: execrun.Result{Stdout: stdout, Stderr: stderr, ExitCode: 1}}
}

const wifiPorts = "Hardware Port: Ethernet\nDevice: en1\n\nHardware Port: Wi-Fi\nDevice: en0\n"

func reachableIP(t *testing.T, status int) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return strings.TrimPrefix(server.URL, "http://")
}

func unreachableIP(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	ip := strings.TrimPrefix(server.URL, "http://")
	server.Close()
	return ip
}
