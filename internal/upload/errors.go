package upload

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"agolink/internal/services"
)

// FailedError aggregates every attempt of an upload that never succeeded.
type FailedError struct {
	Attempts []string
}

func (e *FailedError) Error() string {
	return "Upload failed. Tried: " + strings.Join(e.Attempts, "; ")
}

// Is lets callers classify the failure as transient.
func (e *FailedError) Is(target error) bool {
	return target == services.ErrTransient
}

// DeleteError reports a program removal the device did not confirm.
type DeleteError struct {
	Filename   string
	StatusCode int
	Status     string
	Err        error
}

func (e *DeleteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Failed to reach AGO: %v", e.Err)
	}
	return fmt.Sprintf("AGO returned HTTP %s when deleting %s", e.Status, e.Filename)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// Is maps the failure onto the service markers.
func (e *DeleteError) Is(target error) bool {
	switch {
	case e.Err != nil:
		return target == services.ErrTransient
	case e.StatusCode == http.StatusNotFound:
		return target == services.ErrNotFound
	default:
		return target == services.ErrExternalTool
	}
}

// IsFailed reports whether err is an aggregated upload failure.
func IsFailed(err error) bool {
	var failed *FailedError
	return errors.As(err, &failed)
}
