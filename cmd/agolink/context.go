package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"agolink/internal/config"
	"agolink/internal/execrun"
	"agolink/internal/history"
	"agolink/internal/logging"
	"agolink/internal/services"
	"agolink/internal/tracelog"
	"agolink/internal/upload"
	"agolink/internal/wifi"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	sessionID   string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		sessionID:   uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// log returns the session logger. A logger that cannot be built from config
// falls back to discarding records rather than failing the command.
func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		if cfg != nil && c.verbose() {
			adjusted := *cfg
			adjusted.Logging.Level = "debug"
			cfg = &adjusted
		}
		logger, err := logging.NewFromConfig(cfg, c.sessionID)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// operation stamps the command context with a fresh correlation id and the
// operation name used in log records.
func (c *commandContext) operation(cmd *cobra.Command, name string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithRequestID(ctx, uuid.NewString())
	return services.WithOperation(ctx, name)
}

func (c *commandContext) withStore(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) wifiManager() *wifi.Manager {
	cfg := c.configValue()
	return wifi.NewManager(
		wifi.WithRunner(execrun.New(execrun.WithTimeout(cfg.CommandTimeout()))),
		wifi.WithCommand(cfg.NetworkCommand()),
		wifi.WithProbeTimeout(cfg.ProbeTimeout()),
		wifi.WithLogger(c.log()),
	)
}

func (c *commandContext) associator(memory wifi.NetworkMemory) *wifi.Associator {
	cfg := c.configValue()
	target := wifi.Target{
		SSID:          cfg.Device.SSID,
		Password:      cfg.Device.Password,
		IP:            cfg.Device.IP,
		AutoReconnect: cfg.Device.AutoReconnect,
	}
	return wifi.NewAssociator(c.wifiManager(), target, memory, c.log())
}

func (c *commandContext) traceSink() (*tracelog.FileSink, error) {
	return tracelog.NewFileSink(c.configValue().Paths.TraceLog)
}

func (c *commandContext) orchestrator() (*upload.Orchestrator, error) {
	cfg := c.configValue()
	sink, err := c.traceSink()
	if err != nil {
		return nil, err
	}
	return upload.New(
		upload.WithTrace(sink),
		upload.WithLogger(c.log()),
		upload.WithTimeouts(cfg.UploadTimeout(), cfg.DeleteTimeout()),
	), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
