package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldOperation is the standardized key for the high-level operation (upload, join, ...).
	FieldOperation = "operation"
	// FieldDeviceIP is the standardized key for the targeted device address.
	FieldDeviceIP = "device_ip"
	// FieldEventType names the kind of event for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to an operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSessionID is the standardized structured logging key for CLI invocation identifiers.
	FieldSessionID = "session_id"
)
