package recipe

// SourceStep is one step of a recipe document as authored, before
// conversion. Times are split into minutes and seconds.
type SourceStep struct {
	Name              string  `json:"name"`
	TimeMin           int     `json:"time_min"`
	TimeSec           int     `json:"time_sec"`
	Agitation         string  `json:"agitation"`
	Compensation      string  `json:"compensation"`
	MinTemperature    float64 `json:"min_temperature"`
	RatedTemperature  float64 `json:"rated_temperature"`
	MaxTemperature    float64 `json:"max_temperature"`
	FormulaDesignator string  `json:"formula_designator"`
	LogoText          string  `json:"logo_text"`
}

// Document is an authored recipe.
type Document struct {
	Category      string       `json:"category"`
	Name          string       `json:"name"`
	ExpandedTitle string       `json:"expanded_title"`
	Steps         []SourceStep `json:"steps"`
}

// Bounds are the temperature defaults applied to template steps.
type Bounds struct {
	Min   float64
	Rated float64
	Max   float64
}

var templateStepNames = []string{"DEV", "STOP", "FIX", "RINSE"}

var templateMinutes = map[string]int{
	"DEV":   0,
	"STOP":  1,
	"FIX":   5,
	"RINSE": 10,
}

// Template returns a starter black-and-white recipe: a compensated
// developer step followed by stop, fix, and rinse.
func Template(bounds Bounds) Document {
	steps := make([]SourceStep, 0, len(templateStepNames))
	for _, name := range templateStepNames {
		steps = append(steps, templateStep(name, bounds))
	}
	return Document{
		Category: DefaultCategory,
		Name:     "B&W",
		Steps:    steps,
	}
}

func templateStep(name string, bounds Bounds) SourceStep {
	step := SourceStep{
		Name:             name,
		TimeMin:          templateMinutes[name],
		Agitation:        DefaultAgitation,
		Compensation:     CompensationOff,
		MinTemperature:   bounds.Min,
		RatedTemperature: bounds.Rated,
		MaxTemperature:   bounds.Max,
	}
	if name == "DEV" {
		step.Compensation = "On"
		step.FormulaDesignator = "1.1.1"
		step.LogoText = "B&W DEV"
	}
	return step
}
