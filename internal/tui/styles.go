package tui

import (
	"github.com/charmbracelet/lipgloss"

	"scoreview/internal/chart"
	"scoreview/pkg/scorecsv"
)

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)
	// TitleStyle styles the browser title bar.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// HelpStyle styles the key help footer.
	HelpStyle = lipgloss.NewStyle().Faint(true)
	// SelectedStyle marks the active level in the level bar.
	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

	clearStyles = buildClearStyles()
	tierStyles  = buildTierStyles()
)

// darkText lists lamps whose background is light enough to need dark text.
var darkText = map[scorecsv.ClearType]bool{
	scorecsv.ClearExHard: true,
	scorecsv.ClearNoPlay: true,
}

func buildClearStyles() map[scorecsv.ClearType]lipgloss.Style {
	styles := make(map[scorecsv.ClearType]lipgloss.Style, len(chart.ClearColors))
	for ct, hex := range chart.ClearColors {
		fg := lipgloss.Color("15")
		if darkText[ct] {
			fg = lipgloss.Color("0")
		}
		styles[ct] = lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(fg)
	}
	return styles
}

func buildTierStyles() map[scorecsv.Tier]lipgloss.Style {
	styles := make(map[scorecsv.Tier]lipgloss.Style, len(chart.TierColors))
	for tier, hex := range chart.TierColors {
		styles[tier] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex))
	}
	return styles
}

// ClearStyle returns the lamp style for a clear type.
func ClearStyle(ct scorecsv.ClearType) lipgloss.Style {
	if s, ok := clearStyles[ct]; ok {
		return s
	}
	return clearStyles[scorecsv.ClearNoPlay]
}

// TierStyle returns the badge style for a tier.
func TierStyle(tier scorecsv.Tier) lipgloss.Style {
	if s, ok := tierStyles[tier]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
