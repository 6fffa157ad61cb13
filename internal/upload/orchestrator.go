package upload

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"agolink/internal/logging"
	"agolink/internal/recipe"
	"agolink/internal/services"
	"agolink/internal/tracelog"
)

const (
	defaultUploadTimeout = 12 * time.Second
	defaultDeleteTimeout = 8 * time.Second
)

// Request carries the inputs of one upload.
type Request struct {
	IP string
	// LegacyEndpoint is the user's endpoint override; tried last when it
	// differs from CanonicalPath.
	LegacyEndpoint string
	// UploadField is recorded in the trace only.
	UploadField string
	Filename    string
	Recipe      []byte
	FilmStock   string
	Developer   string
	Dilution    string
}

// Result describes the attempt that succeeded.
type Result struct {
	Message        string    `json:"message"`
	DeviceFilename string    `json:"ago_filename"`
	DisplayName    string    `json:"display_name"`
	Method         string    `json:"method"`
	URL            string    `json:"url"`
	CorrelationID  string    `json:"correlation_id"`
	Attempts       []Attempt `json:"attempts"`
}

// Orchestrator runs uploads and deletes against the device.
type Orchestrator struct {
	client       *http.Client
	deleteClient *http.Client
	trace        tracelog.Sink
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTrace sets the diagnostic sink. Without one, traces are discarded.
func WithTrace(sink tracelog.Sink) Option {
	return func(o *Orchestrator) {
		if sink != nil {
			o.trace = sink
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used for device filenames.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithTimeouts overrides the per-attempt upload and delete timeouts.
func WithTimeouts(uploadTimeout, deleteTimeout time.Duration) Option {
	return func(o *Orchestrator) {
		if uploadTimeout > 0 {
			o.client.Timeout = uploadTimeout
		}
		if deleteTimeout > 0 {
			o.deleteClient.Timeout = deleteTimeout
		}
	}
}

// New constructs an orchestrator. Attempts of one upload share a cookie jar.
func New(opts ...Option) *Orchestrator {
	jar, _ := cookiejar.New(nil)
	o := &Orchestrator{
		client:       &http.Client{Timeout: defaultUploadTimeout, Jar: jar},
		deleteClient: &http.Client{Timeout: defaultDeleteTimeout},
		trace:        discardSink{},
		logger:       logging.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = logging.NewComponentLogger(o.logger, "upload")
	return o
}

// Upload builds the payload and runs the attempt chain until one succeeds.
func (o *Orchestrator) Upload(ctx context.Context, req Request) (*Result, error) {
	ip := strings.TrimSpace(req.IP)
	if ip == "" {
		return nil, services.Wrap(services.ErrValidation, "upload", "resolve device", "device ip is required", nil)
	}

	payload, err := recipe.Build(req.Recipe, recipe.Labels{
		Filename:  req.Filename,
		FilmStock: req.FilmStock,
		Developer: req.Developer,
		Dilution:  req.Dilution,
	})
	if err != nil {
		return nil, err
	}
	body, err := payload.Encode()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "upload", "encode payload", "", err)
	}

	correlationID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		correlationID = uuid.NewString()
		ctx = services.WithRequestID(ctx, correlationID)
	}
	ctx = services.WithDeviceIP(services.WithOperation(ctx, "upload"), ip)
	logger := logging.WithContext(ctx, o.logger)

	deviceFilename := DeviceFilename(o.now())
	primaryURL := ProgramURL(ip, deviceFilename)

	trace := []string{
		"ip=" + ip,
		"endpoint_setting=" + req.LegacyEndpoint,
		"field_setting=" + req.UploadField,
		"filename=" + req.Filename,
		"custom_payload=" + truncate(string(body), payloadSnippetLimit),
		"primary_url=" + primaryURL,
	}

	attempts := make([]Attempt, 0, 3)
	for _, s := range o.strategies(ip, primaryURL, req.LegacyEndpoint) {
		result := o.attempt(ctx, s, body)
		attempts = append(attempts, result)
		if !result.Succeeded {
			logger.Debug("upload attempt rejected",
				logging.String("method", result.Method),
				logging.String("url", result.URL),
				logging.String("outcome", result.Describe()),
			)
			trace = append(trace, "attempt="+result.Describe())
			continue
		}

		message := s.message(req.Filename, deviceFilename, s.url)
		trace = append(trace, "success="+message)
		if s.traceKey != "" {
			trace = append(trace,
				s.traceKey+"_status="+result.Status,
				s.traceKey+"_body="+result.Snippet,
			)
		}
		o.writeTrace(logger, trace)
		logger.Info("program uploaded",
			logging.String("method", result.Method),
			logging.String("url", result.URL),
			logging.String("device_filename", deviceFilename),
			logging.Int("attempts", len(attempts)),
		)
		return &Result{
			Message:        message,
			DeviceFilename: deviceFilename,
			DisplayName:    payload.DisplayName(),
			Method:         result.Method,
			URL:            result.URL,
			CorrelationID:  correlationID,
			Attempts:       attempts,
		}, nil
	}

	described := make([]string, 0, len(attempts))
	for _, a := range attempts {
		described = append(described, a.Describe())
	}
	failure := &FailedError{Attempts: described}
	trace = append(trace, "error="+failure.Error())
	o.writeTrace(logger, trace)
	logger.Info("upload exhausted all attempts", logging.Int("attempts", len(attempts)))
	return nil, failure
}

func (o *Orchestrator) strategies(ip, primaryURL, legacyEndpoint string) []strategy {
	origin := "http://" + ip
	list := []strategy{
		{
			method: http.MethodPost,
			url:    primaryURL,
			headers: http.Header{
				"Accept":       {"application/json, text/plain, */*"},
				"Origin":       {origin},
				"Referer":      {origin + "/programs"},
				"Content-Type": {"application/json"},
			},
			traceKey: "primary",
			message: func(filename, deviceFilename, _ string) string {
				return fmt.Sprintf("Uploaded %s to AGO as %s via API", filename, deviceFilename)
			},
		},
		{
			method:   http.MethodPut,
			url:      primaryURL,
			headers:  http.Header{"Content-Type": {"application/json"}},
			traceKey: "put",
			message: func(filename, deviceFilename, _ string) string {
				return fmt.Sprintf("Uploaded %s to AGO as %s via API (PUT)", filename, deviceFilename)
			},
		},
	}
	if usesLegacyEndpoint(legacyEndpoint) {
		list = append(list, strategy{
			method:  http.MethodPost,
			url:     NormalizeURL(ip, strings.TrimSpace(legacyEndpoint)),
			headers: http.Header{"Content-Type": {"application/json"}},
			tag:     " raw-json",
			message: func(filename, _, url string) string {
				return fmt.Sprintf("Uploaded %s via compatibility endpoint %s", filename, url)
			},
		})
	}
	return list
}

func (o *Orchestrator) writeTrace(logger *slog.Logger, entries []string) {
	if err := o.trace.Append(entries); err != nil {
		logging.WarnWithContext(logger, "upload trace not written", "trace_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.trace_log permissions"),
			logging.String(logging.FieldImpact, "upload diagnostics unavailable for this attempt"),
		)
	}
}

type discardSink struct{}

func (discardSink) Append([]string) error { return nil }
func (discardSink) Read() (string, error) { return "", nil }
func (discardSink) Clear() error           { return nil }
