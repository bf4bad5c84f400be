// Package coverage bands code-coverage percentages into colour schemes.
package coverage

import (
	"strconv"

	"github.com/nikogura/storydocs/pkg/classify"
)

// Level is a coverage band.
type Level string

const (
	LevelHigh        Level = "high"
	LevelMedium      Level = "medium"
	LevelLow         Level = "low"
	LevelUnavailable Level = "unavailable"
)

// Thresholds are inclusive lower bounds.
const (
	HighThreshold   = 80.0
	MediumThreshold = 60.0
)

// UnavailableLabel is shown when a story has no coverage parameter.
const UnavailableLabel = "Coverage Not Available"

//nolint:gochecknoglobals // Coverage configuration constants
var levelColors = map[Level]classify.Colors{
	LevelHigh:        {Background: "#e6f4ea", Foreground: "#137333"},
	LevelMedium:      {Background: "#fef7e0", Foreground: "#b06000"},
	LevelLow:         {Background: "#fce8e6", Foreground: "#c5221f"},
	LevelUnavailable: {Background: "#f1f3f4", Foreground: "#5f6368"},
}

// Scheme is the coverage chip shown in a docs page header.
type Scheme struct {
	Level  Level           `json:"band"`
	Colors classify.Colors `json:"colors"`
	Label  string          `json:"label"`
}

// Band classifies pct. A nil pct is unavailable. Values outside 0..100 are
// not clamped; they land in whichever band their magnitude implies.
func Band(pct *float64) (scheme Scheme) {
	if pct == nil {
		scheme = Scheme{
			Level:  LevelUnavailable,
			Colors: levelColors[LevelUnavailable],
			Label:  UnavailableLabel,
		}
		return scheme
	}

	scheme.Level = levelFor(*pct)
	scheme.Colors = levelColors[scheme.Level]
	scheme.Label = strconv.FormatFloat(*pct, 'f', -1, 64) + "%"

	return scheme
}

func levelFor(pct float64) (level Level) {
	switch {
	case pct >= HighThreshold:
		level = LevelHigh
	case pct >= MediumThreshold:
		level = LevelMedium
	default:
		level = LevelLow
	}
	return level
}
