package history

import "time"

// Upload is one program the device accepted.
type Upload struct {
	ID             int64     `json:"id"`
	CorrelationID  string    `json:"correlation_id"`
	DeviceFilename string    `json:"device_filename"`
	DisplayName    string    `json:"display_name"`
	SourceFile     string    `json:"source_file,omitempty"`
	IP             string    `json:"ip"`
	Method         string    `json:"method"`
	URL            string    `json:"url"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

const settingPreviousSSID = "previous_ssid"
