// Package config loads, normalizes, and validates agolink configuration data.
//
// It supplies defaults matching the device's factory settings, expands user
// paths (including tilde shortcuts), reads TOML files, and honours
// environment fallbacks such as AGOLINK_DEVICE_PASSWORD. The Config type
// centralizes every knob the CLI needs so device address, network utility,
// timeouts, and state locations are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, positive timeouts, and clear validation errors.
package config
