package chart

import "scoreview/pkg/scorecsv"

var clearLabels = map[scorecsv.ClearType]string{
	scorecsv.ClearFullCombo: "FC",
	scorecsv.ClearExHard:    "EXH",
	scorecsv.ClearHard:      "HARD",
	scorecsv.ClearNormal:    "CLEAR",
	scorecsv.ClearEasy:      "EASY",
	scorecsv.ClearAssist:    "ASSIST",
	scorecsv.ClearFailed:    "F",
	scorecsv.ClearNoPlay:    "NP",
}

// ClearColors are the hex colors used for clear types in charts and lamps.
var ClearColors = map[scorecsv.ClearType]string{
	scorecsv.ClearFullCombo: "#f97316",
	scorecsv.ClearExHard:    "#facc15",
	scorecsv.ClearHard:      "#ef4444",
	scorecsv.ClearNormal:    "#3b82f6",
	scorecsv.ClearEasy:      "#22c55e",
	scorecsv.ClearAssist:    "#a855f7",
	scorecsv.ClearFailed:    "#9b9da1",
	scorecsv.ClearNoPlay:    "#d1d5db",
}

// TierColors are the badge colors for the catalog tiers.
var TierColors = map[scorecsv.Tier]string{
	scorecsv.TierHyper:       "#facc15",
	scorecsv.TierAnother:     "#ef4444",
	scorecsv.TierLeggendaria: "#9333ea",
}

// ClearLabel is the short lamp label for a clear type.
func ClearLabel(c scorecsv.ClearType) string {
	if l, ok := clearLabels[c]; ok {
		return l
	}
	return clearLabels[scorecsv.ClearNoPlay]
}

// TierBadge is the one-letter badge for a tier.
func TierBadge(t scorecsv.Tier) string {
	switch t {
	case scorecsv.TierHyper:
		return "H"
	case scorecsv.TierAnother:
		return "A"
	case scorecsv.TierLeggendaria:
		return "L"
	case scorecsv.TierBeginner:
		return "B"
	case scorecsv.TierNormal:
		return "N"
	}
	return "?"
}

var versionAbbreviations = map[string]string{
	"1st&substream":  "1st",
	"2nd style":      "2nd",
	"3rd style":      "3rd",
	"4th style":      "4th",
	"5th style":      "5th",
	"6th style":      "6th",
	"7th style":      "7th",
	"8th style":      "8th",
	"9th style":      "9th",
	"10th style":     "10th",
	"IIDX RED":       "RED",
	"HAPPY SKY":      "HS",
	"DistorteD":      "DD",
	"GOLD":           "GOLD",
	"DJ TROOPERS":    "DJT",
	"EMPRESS":        "EMP",
	"SIRIUS":         "SIR",
	"Resort Anthem":  "RA",
	"Lincle":         "LC",
	"tricoro":        "tri",
	"SPADA":          "SPA",
	"PENDUAL":        "PEN",
	"copula":         "cop",
	"SINOBUZ":        "SINO",
	"CANNON BALLERS": "CB",
	"Rootage":        "Root",
	"HEROIC VERSE":   "HV",
	"BISTROVER":      "BIS",
	"CastHour":       "CH",
	"RESIDENT":       "RES",
	"EPOLIS":         "EPO",
	"Pinky Crush":    "PC",
	"Sparkle Shower": "SS",
}

// VersionAbbrev returns the short name of a version, or the version itself
// when none is known.
func VersionAbbrev(version string) string {
	if a, ok := versionAbbreviations[version]; ok {
		return a
	}
	return version
}
