package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"agolink/internal/logging"
	"agolink/internal/services"
)

// DeleteProgram removes filename from the device. Success is judged on the
// status code alone.
func (o *Orchestrator) DeleteProgram(ctx context.Context, ip, filename string) (string, error) {
	ip = strings.TrimSpace(ip)
	filename = strings.TrimSpace(filename)
	if ip == "" {
		return "", services.Wrap(services.ErrValidation, "upload", "delete program", "device ip is required", nil)
	}
	if filename == "" || strings.Contains(filename, "/") {
		return "", services.Wrap(services.ErrValidation, "upload", "delete program", fmt.Sprintf("invalid device filename %q", filename), nil)
	}

	ctx = services.WithDeviceIP(services.WithOperation(ctx, "delete"), ip)
	logger := logging.WithContext(ctx, o.logger)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, ProgramURL(ip, filename), nil)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "upload", "delete program", "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", "http://"+ip)

	resp, err := o.deleteClient.Do(req)
	if err != nil {
		return "", &DeleteError{Filename: filename, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Info("device refused delete",
			logging.String("device_filename", filename),
			logging.Int("status_code", resp.StatusCode),
		)
		return "", &DeleteError{Filename: filename, StatusCode: resp.StatusCode, Status: statusText(resp)}
	}
	logger.Info("program deleted", logging.String("device_filename", filename))
	return "Deleted " + filename, nil
}
