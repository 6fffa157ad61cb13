package history

import (
	"database/sql"
	"errors"
	"time"
)

const uploadColumns = "id, correlation_id, device_filename, display_name, source_file, ip, method, url, message, created_at"

func scanUpload(scanner interface{ Scan(dest ...any) error }) (*Upload, error) {
	var (
		upload     Upload
		sourceFile sql.NullString
		message    sql.NullString
		createdRaw string
	)
	if err := scanner.Scan(
		&upload.ID,
		&upload.CorrelationID,
		&upload.DeviceFilename,
		&upload.DisplayName,
		&sourceFile,
		&upload.IP,
		&upload.Method,
		&upload.URL,
		&message,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	upload.SourceFile = sourceFile.String
	upload.Message = message.String
	if created, err := parseTimeString(createdRaw); err == nil {
		upload.CreatedAt = created
	}
	return &upload, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
