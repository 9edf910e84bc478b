package scorecsv

import "strings"

// Tier names one of the five chart difficulties a song may carry.
type Tier string

const (
	TierBeginner    Tier = "BEGINNER"
	TierNormal      Tier = "NORMAL"
	TierHyper       Tier = "HYPER"
	TierAnother     Tier = "ANOTHER"
	TierLeggendaria Tier = "LEGGENDARIA"
)

// Tiers lists every tier in export column order.
var Tiers = []Tier{TierBeginner, TierNormal, TierHyper, TierAnother, TierLeggendaria}

// ClearType is the play-result lamp recorded for a chart.
type ClearType string

const (
	ClearFullCombo ClearType = "FULLCOMBO CLEAR"
	ClearExHard    ClearType = "EX HARD CLEAR"
	ClearHard      ClearType = "HARD CLEAR"
	ClearNormal    ClearType = "CLEAR"
	ClearEasy      ClearType = "EASY CLEAR"
	ClearAssist    ClearType = "ASSIST CLEAR"
	ClearFailed    ClearType = "FAILED"
	ClearNoPlay    ClearType = "NO PLAY"
)

// ClearTypes lists clear types best to worst. The index is the sort rank.
var ClearTypes = []ClearType{
	ClearFullCombo,
	ClearExHard,
	ClearHard,
	ClearNormal,
	ClearEasy,
	ClearAssist,
	ClearFailed,
	ClearNoPlay,
}

// Rank returns the position of c in ClearTypes. Unknown values rank with NO PLAY.
func (c ClearType) Rank() int {
	for i, ct := range ClearTypes {
		if ct == c {
			return i
		}
	}
	return len(ClearTypes) - 1
}

// Cleared reports whether the lamp counts toward a clear rate.
func (c ClearType) Cleared() bool {
	return c.Rank() < ClearFailed.Rank()
}

// DJLevel is the letter grade reported by the game.
type DJLevel string

const (
	DJLevelAAA  DJLevel = "AAA"
	DJLevelAA   DJLevel = "AA"
	DJLevelA    DJLevel = "A"
	DJLevelB    DJLevel = "B"
	DJLevelC    DJLevel = "C"
	DJLevelD    DJLevel = "D"
	DJLevelE    DJLevel = "E"
	DJLevelF    DJLevel = "F"
	DJLevelNone DJLevel = "---"
)

var djLevels = []DJLevel{DJLevelAAA, DJLevelAA, DJLevelA, DJLevelB, DJLevelC, DJLevelD, DJLevelE, DJLevelF}

// MissCountUnavailable is the export token for a miss count the game did not record.
const MissCountUnavailable = "---"

// ChartScore holds the recorded result for one tier of a song.
type ChartScore struct {
	Difficulty int       `json:"difficulty"`
	Score      int       `json:"score"`
	PGreat     int       `json:"pgreat"`
	Great      int       `json:"great"`
	MissCount  *int      `json:"missCount"`
	ClearType  ClearType `json:"clearType"`
	DJLevel    DJLevel   `json:"djLevel"`
}

// ScoreEntry is one song row of the export.
type ScoreEntry struct {
	Version      string      `json:"version"`
	Title        string      `json:"title"`
	Genre        string      `json:"genre"`
	Artist       string      `json:"artist"`
	PlayCount    int         `json:"playCount"`
	Beginner     *ChartScore `json:"beginner"`
	Normal       *ChartScore `json:"normal"`
	Hyper        *ChartScore `json:"hyper"`
	Another      *ChartScore `json:"another"`
	Leggendaria  *ChartScore `json:"leggendaria"`
	LastPlayDate string      `json:"lastPlayDate"`
}

// Chart returns the score recorded for tier, or nil when the song has no such chart.
func (e ScoreEntry) Chart(tier Tier) *ChartScore {
	switch tier {
	case TierBeginner:
		return e.Beginner
	case TierNormal:
		return e.Normal
	case TierHyper:
		return e.Hyper
	case TierAnother:
		return e.Another
	case TierLeggendaria:
		return e.Leggendaria
	}
	return nil
}

func (e *ScoreEntry) setChart(tier Tier, cs *ChartScore) {
	switch tier {
	case TierBeginner:
		e.Beginner = cs
	case TierNormal:
		e.Normal = cs
	case TierHyper:
		e.Hyper = cs
	case TierAnother:
		e.Another = cs
	case TierLeggendaria:
		e.Leggendaria = cs
	}
}

// ParseClearType maps export text onto a ClearType. Case and whitespace are
// ignored; anything unrecognized becomes NO PLAY.
func ParseClearType(value string) ClearType {
	normalized := collapseSpace(strings.ToUpper(value))
	if normalized == "FULL COMBO" {
		return ClearFullCombo
	}
	for _, ct := range ClearTypes {
		if string(ct) == normalized {
			return ct
		}
	}
	return ClearNoPlay
}

// ParseDJLevel maps export text onto a DJLevel, defaulting to DJLevelNone.
func ParseDJLevel(value string) DJLevel {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, lvl := range djLevels {
		if string(lvl) == normalized {
			return lvl
		}
	}
	return DJLevelNone
}

func collapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
