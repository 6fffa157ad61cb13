package upload_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agolink/internal/services"
	"agolink/internal/upload"
)

func TestDeleteProgramSuccess(t *testing.T) {
	device, ip := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	msg, err := newOrchestrator(nil).DeleteProgram(context.Background(), ip, "_P_C0_0000abcd.txt")
	if err != nil {
		t.Fatalf("DeleteProgram returned error: %v", err)
	}
	if msg != "Deleted _P_C0_0000abcd.txt" {
		t.Fatalf("unexpected message %q", msg)
	}

	requests := device.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	got := requests[0]
	if got.Method != http.MethodDelete || got.Path != "/api/files/programs/custom/_P_C0_0000abcd.txt" {
		t.Fatalf("unexpected request %s %s", got.Method, got.Path)
	}
	if got.Header.Get("Accept") != "application/json" || got.Header.Get("Origin") != "http://"+ip {
		t.Fatalf("unexpected headers %v", got.Header)
	}
}

func TestDeleteProgramIgnoresHTMLBody(t *testing.T) {
	_, ip := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	})
	if _, err := newOrchestrator(nil).DeleteProgram(context.Background(), ip, "a.txt"); err != nil {
		t.Fatalf("delete success is judged on status only: %v", err)
	}
}

func TestDeleteProgramStatusFailure(t *testing.T) {
	_, ip := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := newOrchestrator(nil).DeleteProgram(context.Background(), ip, "missing.txt")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "AGO returned HTTP 404 Not Found when deleting missing.txt" {
		t.Fatalf("unexpected error text %q", err.Error())
	}
	var deleteErr *upload.DeleteError
	if !errors.As(err, &deleteErr) || deleteErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected DeleteError with 404, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatal("expected not found marker")
	}
}

func TestDeleteProgramTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	ip := strings.TrimPrefix(server.URL, "http://")
	server.Close()

	_, err := newOrchestrator(nil).DeleteProgram(context.Background(), ip, "a.txt")
	if err == nil || !strings.HasPrefix(err.Error(), "Failed to reach AGO: ") {
		t.Fatalf("expected transport failure, got %v", err)
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatal("expected transient marker")
	}
}

func TestDeleteProgramValidatesInputs(t *testing.T) {
	orchestrator := newOrchestrator(nil)
	cases := []struct{ ip, filename string }{
		{"", "a.txt"},
		{"10.10.10.1", ""},
		{"10.10.10.1", "../etc/passwd"},
	}
	for _, tc := range cases {
		if _, err := orchestrator.DeleteProgram(context.Background(), tc.ip, tc.filename); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("DeleteProgram(%q, %q) expected validation error, got %v", tc.ip, tc.filename, err)
		}
	}
}
