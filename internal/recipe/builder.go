package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidRecipe marks recipe documents that cannot be converted.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Labels are the caller-supplied naming inputs for a build.
type Labels struct {
	// Filename is the recipe's file name; used for the program name when
	// FilmStock is blank.
	Filename  string
	FilmStock string
	Developer string
	Dilution  string
}

// Build converts a recipe document into the device payload.
func Build(doc []byte, labels Labels) (*Payload, error) {
	parsed, err := decodeDocument(doc)
	if err != nil {
		return nil, err
	}

	rawSteps, ok := parsed["steps"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing steps array", ErrInvalidRecipe)
	}

	category := stringField(parsed, "category")
	if category == "" {
		category = DefaultCategory
	}

	name := strings.TrimSpace(labels.FilmStock)
	if name == "" {
		name = NameFromFilename(labels.Filename)
	}

	steps := make([]Step, 0, len(rawSteps))
	for _, raw := range rawSteps {
		source, _ := raw.(map[string]any)
		steps = append(steps, buildStep(source))
	}

	return &Payload{
		Name:          name,
		Designator:    Designator,
		Category:      category,
		ExpandedTitle: expandedTitle(stringField(parsed, "expanded_title"), labels.Developer, labels.Dilution),
		Steps:         steps,
	}, nil
}

func decodeDocument(doc []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidRecipe)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing steps array", ErrInvalidRecipe)
	}
	return obj, nil
}

// expandedTitle applies the subtitle policy: explicit developer/dilution
// labels replace whatever the document carries.
func expandedTitle(existing, developer, dilution string) string {
	developer = strings.TrimSpace(developer)
	dilution = strings.TrimSpace(dilution)

	if developer == "" && dilution == "" {
		switch {
		case existing == "":
			return ""
		case strings.HasPrefix(existing, " -"), strings.HasPrefix(existing, "-"):
			return existing
		default:
			return " - " + existing
		}
	}

	parts := make([]string, 0, 2)
	if developer != "" {
		parts = append(parts, developer)
	}
	if dilution != "" {
		parts = append(parts, dilution)
	}
	return " - " + strings.Join(parts, " ")
}

func buildStep(source map[string]any) Step {
	var seconds int64
	if _, ok := source["time"]; ok {
		seconds = intField(source, "time")
	} else {
		seconds = intField(source, "time_min")*60 + intField(source, "time_sec")
	}

	step := Step{
		Name:              stringField(source, "name"),
		Time:              max(seconds, 0),
		Agitation:         stringField(source, "agitation"),
		Compensation:      stringField(source, "compensation"),
		FormulaDesignator: stringField(source, "formula_designator"),
	}
	if step.Agitation == "" {
		step.Agitation = DefaultAgitation
	}
	if step.Compensation == "" {
		step.Compensation = CompensationOff
	}

	if step.Compensated() {
		minTemp, maxTemp := DefaultMinTemperature, DefaultMaxTemperature
		if _, ok := source["min_temperature"]; ok {
			minTemp = Temperature(floatField(source, "min_temperature"))
		}
		if _, ok := source["max_temperature"]; ok {
			maxTemp = Temperature(floatField(source, "max_temperature"))
		}
		step.MinTemperature = &minTemp
		step.MaxTemperature = &maxTemp
	}
	return step
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}

// intField reads an integral JSON number; fractional, oversized, or
// non-numeric values read as zero.
func intField(obj map[string]any, key string) int64 {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return v
}

func floatField(obj map[string]any, key string) float64 {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0
	}
	v, err := n.Float64()
	if err != nil {
		return 0
	}
	return v
}
