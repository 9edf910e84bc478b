// Package chart joins parsed scores with the difficulty catalog and orders and
// aggregates the resulting per-chart rows.
package chart

import (
	"strings"

	"github.com/shopspring/decimal"

	"scoreview/pkg/scorecsv"
)

// UnknownLevel is the level key for charts without an unofficial rating.
const UnknownLevel = "Unknown"

// Chart is one (title, tier) row of the derived collection.
type Chart struct {
	Version         string              `json:"version"`
	Title           string              `json:"title"`
	DisplayTitle    string              `json:"displayTitle"`
	Difficulty      scorecsv.Tier       `json:"difficulty"`
	OfficialLevel   int                 `json:"officialLevel"`
	UnofficialLevel decimal.NullDecimal `json:"unofficialLevel"`
	Score           int                 `json:"score"`
	PGreat          int                 `json:"pgreat"`
	Great           int                 `json:"great"`
	MissCount       *int                `json:"missCount"`
	ClearType       scorecsv.ClearType  `json:"clearType"`
	DJLevel         scorecsv.DJLevel    `json:"djLevel"`
	LastPlayDate    string              `json:"lastPlayDate"`
}

// LevelKey is the grouping key for the chart's unofficial level.
func (c Chart) LevelKey() string {
	return LevelKey(c.UnofficialLevel)
}

// LevelKey renders a level as its grouping key. Whole numbers keep one
// decimal place so 11 and 11.0 share the key "11.0".
func LevelKey(level decimal.NullDecimal) string {
	if !level.Valid {
		return UnknownLevel
	}
	s := level.Decimal.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
