package history_test

import (
	"agolink/internal/history"
	"agolink/internal/wifi"
)

var _ wifi.NetworkMemory = (*history.Store)(nil)
