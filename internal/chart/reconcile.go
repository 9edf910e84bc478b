package chart

import (
	"time"

	"scoreview/internal/catalog"
	"scoreview/pkg/scorecsv"
)

// Reconcile joins export scores with the catalog. The catalog drives
// enumeration: every rated (title, tier) pair yields exactly one Chart, played
// or not, and export titles the catalog does not know are dropped.
func Reconcile(scores []scorecsv.ScoreEntry, cat *catalog.Catalog, aliases *catalog.AliasTable) []Chart {
	charts, _ := ReconcileReport(scores, cat, aliases)
	return charts
}

// ReconcileReport is Reconcile plus the export titles, in export order, that
// were not attached to any catalog chart.
func ReconcileReport(scores []scorecsv.ScoreEntry, cat *catalog.Catalog, aliases *catalog.AliasTable) ([]Chart, []string) {
	start := time.Now()
	charts, matched, played := reconcile(scores, cat, aliases)
	unmatched := unmatchedTitles(scores, matched)
	reconcileTimer.UpdateSince(start)

	chartsPlayed.Inc(played)
	chartsNoPlay.Inc(int64(len(charts)) - played)
	scoresUnmatched.Inc(int64(len(unmatched)))
	return charts, unmatched
}

// Unmatched returns export titles, in export order, that Reconcile did not
// attach to any catalog chart.
func Unmatched(scores []scorecsv.ScoreEntry, cat *catalog.Catalog, aliases *catalog.AliasTable) []string {
	_, matched, _ := reconcile(scores, cat, aliases)
	return unmatchedTitles(scores, matched)
}

func unmatchedTitles(scores []scorecsv.ScoreEntry, matched map[string]struct{}) []string {
	var out []string
	seen := make(map[string]struct{}, len(scores))
	for _, s := range scores {
		if _, ok := matched[s.Title]; ok {
			continue
		}
		if _, dup := seen[s.Title]; dup {
			continue
		}
		seen[s.Title] = struct{}{}
		out = append(out, s.Title)
	}
	return out
}

func reconcile(scores []scorecsv.ScoreEntry, cat *catalog.Catalog, aliases *catalog.AliasTable) ([]Chart, map[string]struct{}, int64) {
	byTitle := make(map[string]scorecsv.ScoreEntry, len(scores))
	for _, s := range scores {
		byTitle[s.Title] = s
	}
	reverse := aliases.Reverse()

	var (
		charts  = []Chart{}
		seen    = make(map[string]struct{})
		matched = make(map[string]struct{})
		played  int64
	)

	for _, canonical := range cat.Titles() {
		entry, _ := cat.Lookup(canonical)

		exportTitle, ok := reverse[canonical]
		if !ok {
			exportTitle = canonical
		}
		score, hasScore := byTitle[exportTitle]
		if hasScore {
			matched[exportTitle] = struct{}{}
		}

		for _, tier := range catalog.Tiers {
			level := entry.Level(tier)
			if level == nil {
				continue
			}
			key := canonical + "\x00" + string(tier)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			var cs *scorecsv.ChartScore
			if hasScore {
				cs = score.Chart(tier)
			}
			c := newChart(entry, level, canonical, exportTitle, tier, cs)
			if cs != nil {
				c.LastPlayDate = score.LastPlayDate
				played++
			}
			charts = append(charts, c)
		}
	}

	return charts, matched, played
}

func newChart(entry catalog.Entry, level *catalog.Level, canonical, exportTitle string, tier scorecsv.Tier, cs *scorecsv.ChartScore) Chart {
	c := Chart{
		Version:         entry.Version,
		Title:           exportTitle,
		DisplayTitle:    canonical,
		Difficulty:      tier,
		UnofficialLevel: level.Unofficial,
		ClearType:       scorecsv.ClearNoPlay,
		DJLevel:         scorecsv.DJLevelNone,
	}
	if level.Official != nil {
		c.OfficialLevel = *level.Official
	}
	if cs == nil {
		return c
	}

	if level.Official == nil {
		c.OfficialLevel = cs.Difficulty
	}
	c.Score = cs.Score
	c.PGreat = cs.PGreat
	c.Great = cs.Great
	if cs.MissCount != nil {
		miss := *cs.MissCount
		c.MissCount = &miss
	}
	c.ClearType = cs.ClearType
	c.DJLevel = cs.DJLevel
	return c
}
