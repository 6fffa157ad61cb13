package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDevice(); err != nil {
		return err
	}
	if err := c.validateTemperature(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDevice() error {
	if strings.TrimSpace(c.Device.IP) == "" {
		return errors.New("device.ip must be set")
	}
	if strings.ContainsAny(c.Device.IP, "/ ") {
		return fmt.Errorf("device.ip must be a bare host or host:port, got %q", c.Device.IP)
	}
	if strings.TrimSpace(c.Device.SSID) == "" {
		return errors.New("device.ssid must be set")
	}
	return nil
}

func (c *Config) validateTemperature() error {
	if c.Temperature.DefaultMin > c.Temperature.DefaultMax {
		return fmt.Errorf("temperature.default_min (%g) must not exceed temperature.default_max (%g)",
			c.Temperature.DefaultMin, c.Temperature.DefaultMax)
	}
	if c.Temperature.DefaultRated < c.Temperature.DefaultMin || c.Temperature.DefaultRated > c.Temperature.DefaultMax {
		return fmt.Errorf("temperature.default_rated (%g) must lie between default_min and default_max",
			c.Temperature.DefaultRated)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	if c.Network.CommandTimeout <= 0 {
		return errors.New("network.command_timeout must be positive")
	}
	if c.HTTP.UploadTimeout <= 0 {
		return errors.New("http.upload_timeout must be positive")
	}
	if c.HTTP.DeleteTimeout <= 0 {
		return errors.New("http.delete_timeout must be positive")
	}
	if c.HTTP.ProbeTimeout <= 0 {
		return errors.New("http.probe_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
