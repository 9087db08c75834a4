package weather

import (
	"fmt"
	"math"
)

// Condition is the coarse weather family a WMO code falls into
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionCloudy       Condition = "cloudy"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionUnknown      Condition = "unknown"
)

type codeRange struct {
	min, max  int
	condition Condition
}

// conditionRules are disjoint and evaluated in order; codes matching none are ConditionUnknown
var conditionRules = []codeRange{
	{min: 0, max: 0, condition: ConditionClear},
	{min: 1, max: 3, condition: ConditionCloudy},
	{min: 51, max: 67, condition: ConditionRain},
	{min: 71, max: 77, condition: ConditionSnow},
	{min: 95, max: math.MaxInt, condition: ConditionThunderstorm},
}

// ConditionFor classifies a weather code
func ConditionFor(code int) Condition {
	for _, rule := range conditionRules {
		if code >= rule.min && code <= rule.max {
			return rule.condition
		}
	}
	return ConditionUnknown
}

// Icon identifies the glyph shown on the weather card
type Icon string

const (
	IconClear        Icon = "clear"
	IconCloudy       Icon = "cloudy"
	IconRain         Icon = "rain"
	IconSnow         Icon = "snow"
	IconThunderstorm Icon = "thunderstorm"
)

var conditionIcons = map[Condition]Icon{
	ConditionClear:        IconClear,
	ConditionCloudy:       IconCloudy,
	ConditionRain:         IconRain,
	ConditionSnow:         IconSnow,
	ConditionThunderstorm: IconThunderstorm,
}

var iconGlyphs = map[Icon]string{
	IconClear:        "☀️",
	IconCloudy:       "☁️",
	IconRain:         "🌧️",
	IconSnow:         "❄️",
	IconThunderstorm: "⛈️",
}

var iconColors = map[Icon]string{
	IconClear:        "#facc15",
	IconCloudy:       "#e5e7eb",
	IconRain:         "#93c5fd",
	IconSnow:         "#a5f3fc",
	IconThunderstorm: "#a855f7",
}

// unknownIconColor tints the fallback clear icon so it differs from a real clear sky
const unknownIconColor = "#fb923c"

// IconFor picks the card icon for a weather code, falling back to IconClear
func IconFor(code int) Icon {
	if icon, ok := conditionIcons[ConditionFor(code)]; ok {
		return icon
	}
	return IconClear
}

// Glyph returns the emoji rendered for the icon
func (i Icon) Glyph() string {
	return iconGlyphs[i]
}

// Color returns the CSS colour the glyph is drawn in
func (i Icon) Color() string {
	return iconColors[i]
}

// Gradient identifies the page background
type Gradient string

const (
	GradientDefault      Gradient = "default"
	GradientClear        Gradient = "clear"
	GradientCloudy       Gradient = "cloudy"
	GradientRain         Gradient = "rain"
	GradientSnow         Gradient = "snow"
	GradientThunderstorm Gradient = "thunderstorm"
)

var conditionGradients = map[Condition]Gradient{
	ConditionClear:        GradientClear,
	ConditionCloudy:       GradientCloudy,
	ConditionRain:         GradientRain,
	ConditionSnow:         GradientSnow,
	ConditionThunderstorm: GradientThunderstorm,
}

var gradientStops = map[Gradient][3]string{
	GradientDefault:      {"#60a5fa", "#6366f1", "#2563eb"},
	GradientClear:        {"#fef08a", "#fdba74", "#f472b6"},
	GradientCloudy:       {"#9ca3af", "#6b7280", "#374151"},
	GradientRain:         {"#1d4ed8", "#1e40af", "#111827"},
	GradientSnow:         {"#bfdbfe", "#a5f3fc", "#ffffff"},
	GradientThunderstorm: {"#6b21a8", "#581c87", "#000000"},
}

// GradientFor picks the page background. A nil snapshot or an unclassified
// code gets GradientDefault.
func GradientFor(snapshot *Snapshot) Gradient {
	if snapshot == nil {
		return GradientDefault
	}
	if gradient, ok := conditionGradients[ConditionFor(snapshot.Weathercode)]; ok {
		return gradient
	}
	return GradientDefault
}

// Stops returns the three colour stops of the gradient, left to right
func (g Gradient) Stops() [3]string {
	if stops, ok := gradientStops[g]; ok {
		return stops
	}
	return gradientStops[GradientDefault]
}

// CSS returns the gradient as a CSS background-image value
func (g Gradient) CSS() string {
	stops := g.Stops()
	return fmt.Sprintf("linear-gradient(to right, %s, %s, %s)", stops[0], stops[1], stops[2])
}

// Display is the presentation data derived from a state
type Display struct {
	Condition  Condition `json:"condition"`
	Icon       Icon      `json:"icon"`
	Glyph      string    `json:"glyph"`
	IconColor  string    `json:"iconColor"`
	Gradient   Gradient  `json:"gradient"`
	Background string    `json:"background" doc:"CSS background-image value"`
}

// NewDisplay derives the icon and background for a snapshot, which may be nil
func NewDisplay(snapshot *Snapshot) Display {
	gradient := GradientFor(snapshot)
	display := Display{
		Gradient:   gradient,
		Background: gradient.CSS(),
	}
	if snapshot != nil {
		icon := IconFor(snapshot.Weathercode)
		display.Condition = ConditionFor(snapshot.Weathercode)
		display.Icon = icon
		display.Glyph = icon.Glyph()
		display.IconColor = icon.Color()
		if display.Condition == ConditionUnknown {
			display.IconColor = unknownIconColor
		}
	}
	return display
}
