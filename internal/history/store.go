package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"agolink/internal/config"
	"agolink/internal/services"
)

// Store manages the upload ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger in the configured state directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the ledger at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("history path required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordUpload stores an accepted upload. Re-recording a device filename
// replaces the earlier row.
func (s *Store) RecordUpload(ctx context.Context, upload Upload) (*Upload, error) {
	if strings.TrimSpace(upload.DeviceFilename) == "" {
		return nil, services.Wrap(services.ErrValidation, "history", "record upload", "device filename required", nil)
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now()
	}
	upload.CreatedAt = upload.CreatedAt.UTC()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO uploads (
            correlation_id, device_filename, display_name, source_file,
            ip, method, url, message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(device_filename) DO UPDATE SET
            correlation_id = excluded.correlation_id,
            display_name = excluded.display_name,
            source_file = excluded.source_file,
            ip = excluded.ip,
            method = excluded.method,
            url = excluded.url,
            message = excluded.message,
            created_at = excluded.created_at`,
		upload.CorrelationID,
		upload.DeviceFilename,
		upload.DisplayName,
		nullableString(upload.SourceFile),
		upload.IP,
		upload.Method,
		upload.URL,
		nullableString(upload.Message),
		upload.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert upload: %w", err)
	}
	return s.GetUpload(ctx, upload.DeviceFilename)
}

// GetUpload fetches a ledger row by device filename. A missing row returns nil.
func (s *Store) GetUpload(ctx context.Context, deviceFilename string) (*Upload, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE device_filename = ?`, deviceFilename)
	upload, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get upload: %w", err)
	}
	return upload, nil
}

// ListUploads returns every ledger row, newest first.
func (s *Store) ListUploads(ctx context.Context) ([]*Upload, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+uploadColumns+` FROM uploads ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*Upload
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return uploads, nil
}

// RemoveUpload deletes the ledger row for deviceFilename and reports whether
// one existed.
func (s *Store) RemoveUpload(ctx context.Context, deviceFilename string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM uploads WHERE device_filename = ?`, deviceFilename)
	if err != nil {
		return false, fmt.Errorf("remove upload: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// SetPreviousSSID remembers the network to return to after leaving the device.
func (s *Store) SetPreviousSSID(ctx context.Context, ssid string) error {
	return s.setSetting(ctx, settingPreviousSSID, ssid)
}

// PreviousSSID returns the remembered network, or "" when none is stored.
func (s *Store) PreviousSSID(ctx context.Context) (string, error) {
	return s.setting(ctx, settingPreviousSSID)
}

// ClearPreviousSSID forgets the remembered network.
func (s *Store) ClearPreviousSSID(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, settingPreviousSSID); err != nil {
		return fmt.Errorf("clear setting: %w", err)
	}
	return nil
}

func (s *Store) setSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) setting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}
