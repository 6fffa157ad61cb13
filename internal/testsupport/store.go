package testsupport

import (
	"context"
	"testing"

	"agolink/internal/config"
	"agolink/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordUpload inserts a ledger row for tests using the provided store.
func RecordUpload(t testing.TB, store *history.Store, deviceFilename, displayName string) *history.Upload {
	t.Helper()

	upload, err := store.RecordUpload(context.Background(), history.Upload{
		CorrelationID:  "test-" + deviceFilename,
		DeviceFilename: deviceFilename,
		DisplayName:    displayName,
		IP:             "10.10.10.1",
		Method:         "POST",
		URL:            "http://10.10.10.1/api/files/programs/custom/" + deviceFilename,
	})
	if err != nil {
		t.Fatalf("store.RecordUpload: %v", err)
	}
	return upload
}
