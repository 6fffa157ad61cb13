package config

const (
	defaultConfigPath       = "~/.config/agolink/config.toml"
	defaultDeviceIP         = "10.10.10.1"
	defaultDeviceSSID       = "AGO"
	defaultDevicePassword   = "12345678"
	defaultUploadEndpoint   = "/api/files/programs/custom"
	defaultUploadField      = "json"
	defaultAutoReconnect    = true
	defaultMinTemperature   = 18.0
	defaultRatedTemperature = 20.0
	defaultMaxTemperature   = 24.0
	defaultNetworkCommand   = "networksetup"
	defaultCommandTimeout   = 20
	defaultUploadTimeout    = 12
	defaultDeleteTimeout    = 8
	defaultProbeTimeout     = 2
	defaultStateDir         = "~/.local/share/agolink"
	defaultTraceLogName     = "upload-debug.log"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	devicePasswordEnvVar    = "AGOLINK_DEVICE_PASSWORD"
	deviceIPEnvVar          = "AGOLINK_DEVICE_IP"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Device: Device{
			IP:             defaultDeviceIP,
			SSID:           defaultDeviceSSID,
			Password:       defaultDevicePassword,
			UploadEndpoint: defaultUploadEndpoint,
			UploadField:    defaultUploadField,
			AutoReconnect:  defaultAutoReconnect,
		},
		Temperature: Temperature{
			DefaultMin:   defaultMinTemperature,
			DefaultRated: defaultRatedTemperature,
			DefaultMax:   defaultMaxTemperature,
		},
		Network: Network{
			Command:        defaultNetworkCommand,
			CommandTimeout: defaultCommandTimeout,
		},
		HTTP: HTTP{
			UploadTimeout: defaultUploadTimeout,
			DeleteTimeout: defaultDeleteTimeout,
			ProbeTimeout:  defaultProbeTimeout,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
