package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDevice()
	c.normalizeNetwork()
	c.normalizeHTTP()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDevice() {
	if value, ok := os.LookupEnv(deviceIPEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Device.IP = value
	}
	c.Device.IP = strings.TrimSpace(c.Device.IP)
	if c.Device.IP == "" {
		c.Device.IP = defaultDeviceIP
	}
	c.Device.SSID = strings.TrimSpace(c.Device.SSID)
	if c.Device.SSID == "" {
		c.Device.SSID = defaultDeviceSSID
	}
	if value, ok := os.LookupEnv(devicePasswordEnvVar); ok {
		c.Device.Password = value
	}
	if c.Device.Password == "" {
		c.Device.Password = defaultDevicePassword
	}
	c.Device.UploadEndpoint = strings.TrimSpace(c.Device.UploadEndpoint)
	c.Device.UploadField = strings.TrimSpace(c.Device.UploadField)
	if c.Device.UploadField == "" {
		c.Device.UploadField = defaultUploadField
	}
}

func (c *Config) normalizeNetwork() {
	c.Network.Command = strings.TrimSpace(c.Network.Command)
	if c.Network.Command == "" {
		c.Network.Command = defaultNetworkCommand
	}
	if c.Network.CommandTimeout <= 0 {
		c.Network.CommandTimeout = defaultCommandTimeout
	}
}

func (c *Config) normalizeHTTP() {
	if c.HTTP.UploadTimeout <= 0 {
		c.HTTP.UploadTimeout = defaultUploadTimeout
	}
	if c.HTTP.DeleteTimeout <= 0 {
		c.HTTP.DeleteTimeout = defaultDeleteTimeout
	}
	if c.HTTP.ProbeTimeout <= 0 {
		c.HTTP.ProbeTimeout = defaultProbeTimeout
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TraceLog) == "" {
		c.Paths.TraceLog = filepath.Join(c.Paths.StateDir, defaultTraceLogName)
	}
	if c.Paths.TraceLog, err = expandPath(c.Paths.TraceLog); err != nil {
		return fmt.Errorf("paths.trace_log: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
