package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Device contains the target device's network identity and upload settings.
type Device struct {
	IP             string `toml:"ip"`
	SSID           string `toml:"ssid"`
	Password       string `toml:"password"`
	UploadEndpoint string `toml:"upload_endpoint"`
	UploadField    string `toml:"upload_field"`
	AutoReconnect  bool   `toml:"auto_reconnect"`
}

// Temperature contains default bounds used when drafting new recipes.
type Temperature struct {
	DefaultMin   float64 `toml:"default_min"`
	DefaultRated float64 `toml:"default_rated"`
	DefaultMax   float64 `toml:"default_max"`
}

// Network contains configuration for the OS network utility.
type Network struct {
	Command        string `toml:"command"`
	CommandTimeout int    `toml:"command_timeout"`
}

// HTTP contains per-call timeouts, in seconds, for device requests.
type HTTP struct {
	UploadTimeout int `toml:"upload_timeout"`
	DeleteTimeout int `toml:"delete_timeout"`
	ProbeTimeout  int `toml:"probe_timeout"`
}

// Paths contains state locations.
type Paths struct {
	StateDir string `toml:"state_dir"`
	TraceLog string `toml:"trace_log"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for agolink.
//
// Configuration sections by subsystem:
//   - Device: address, access point credentials, upload endpoint override
//   - Temperature: default bounds for recipe templates
//   - Network: OS Wi-Fi utility and its timeout
//   - HTTP: upload, delete, and probe timeouts
//   - Paths: state directory and upload trace log
//   - Logging: log format and level
type Config struct {
	Device      Device      `toml:"device"`
	Temperature Temperature `toml:"temperature"`
	Network     Network     `toml:"network"`
	HTTP        HTTP        `toml:"http"`
	Paths       Paths       `toml:"paths"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("agolink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and the trace log's parent.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir}
	if c.Paths.TraceLog != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.TraceLog))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the SQLite ledger location inside the state directory.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "agolink.db")
}

// NetworkCommand returns the OS Wi-Fi utility executable name.
func (c *Config) NetworkCommand() string {
	if cmd := strings.TrimSpace(c.Network.Command); cmd != "" {
		return cmd
	}
	return defaultNetworkCommand
}

// CommandTimeout returns the bound applied to each network utility run.
func (c *Config) CommandTimeout() time.Duration {
	return seconds(c.Network.CommandTimeout)
}

// UploadTimeout returns the per-attempt bound for uploads.
func (c *Config) UploadTimeout() time.Duration {
	return seconds(c.HTTP.UploadTimeout)
}

// DeleteTimeout returns the bound for program deletion.
func (c *Config) DeleteTimeout() time.Duration {
	return seconds(c.HTTP.DeleteTimeout)
}

// ProbeTimeout returns the bound for reachability probes.
func (c *Config) ProbeTimeout() time.Duration {
	return seconds(c.HTTP.ProbeTimeout)
}

func seconds(value int) time.Duration {
	return time.Duration(value) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
