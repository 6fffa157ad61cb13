package recipe

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// Designator is the fixed program designator for custom uploads.
	Designator = "C2"
	// DefaultCategory applies when the recipe names none.
	DefaultCategory = "BW"
	// DefaultAgitation applies to steps with no agitation mode.
	DefaultAgitation = "Roll"
	// CompensationOff disables temperature compensation for a step.
	CompensationOff = "Off"
	// DefaultMinTemperature is the lower compensation bound when a step omits one.
	DefaultMinTemperature Temperature = 18.0
	// DefaultMaxTemperature is the upper compensation bound when a step omits one.
	DefaultMaxTemperature Temperature = 24.0
	// FallbackProgramName is used when neither film stock nor filename yield a name.
	FallbackProgramName = "Custom Program"
)

// Temperature is a step temperature in degrees Celsius. It always encodes
// with a fractional part (18.0, not 18) to match what the device's own web
// UI sends.
type Temperature float64

// MarshalJSON implements json.Marshaler.
func (t Temperature) MarshalJSON() ([]byte, error) {
	f := float64(t)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s), nil
}

// Step is one timed stage of a device program.
type Step struct {
	Name              string       `json:"name"`
	Time              int64        `json:"time"`
	Agitation         string       `json:"agitation"`
	Compensation      string       `json:"compensation"`
	FormulaDesignator string       `json:"formula_designator,omitempty"`
	MinTemperature    *Temperature `json:"min_temperature,omitempty"`
	MaxTemperature    *Temperature `json:"max_temperature,omitempty"`
}

// Compensated reports whether the step carries temperature bounds.
func (s Step) Compensated() bool {
	return s.Compensation != CompensationOff
}

// Payload is the canonical upload document. Field order is fixed.
type Payload struct {
	Name          string `json:"name"`
	Designator    string `json:"designator"`
	Category      string `json:"category"`
	ExpandedTitle string `json:"expanded_title"`
	Steps         []Step `json:"steps"`
}

// Encode serializes the payload without HTML escaping, so names such as
// "B&W" reach the device verbatim.
func (p *Payload) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DisplayName is the title the device shows for the program.
func (p *Payload) DisplayName() string {
	return p.Name + p.ExpandedTitle
}
