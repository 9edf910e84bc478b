package chart

import (
	"fmt"
	"sort"
	"strconv"

	"scoreview/pkg/scorecsv"
)

// Counts maps each observed clear type to its number of charts. Clear types
// with no charts are absent.
type Counts map[scorecsv.ClearType]int

// Total is the number of charts across all clear types.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// GroupByLevel partitions charts by level key. Each group keeps the input
// order.
func GroupByLevel(data []Chart) map[string][]Chart {
	groups := make(map[string][]Chart)
	for _, c := range data {
		key := c.LevelKey()
		groups[key] = append(groups[key], c)
	}
	return groups
}

// GroupStats counts clear types per level key.
func GroupStats(data []Chart) map[string]Counts {
	stats := make(map[string]Counts)
	for _, c := range data {
		key := c.LevelKey()
		counts, ok := stats[key]
		if !ok {
			counts = make(Counts)
			stats[key] = counts
		}
		counts[c.ClearType]++
	}
	return stats
}

// SortedLevels returns level keys in ascending numeric order with
// UnknownLevel last.
func SortedLevels[V any](groups map[string]V) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	SortLevelKeys(keys)
	return keys
}

// SortLevelKeys orders level keys in place.
func SortLevelKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a == UnknownLevel || b == UnknownLevel {
			return b == UnknownLevel && a != UnknownLevel
		}
		af, aerr := strconv.ParseFloat(a, 64)
		bf, berr := strconv.ParseFloat(b, 64)
		if aerr != nil || berr != nil {
			return a < b
		}
		return af < bf
	})
}

// ClearRate summarizes how many charts at a level are cleared. FAILED and
// NO PLAY do not count as cleared.
type ClearRate struct {
	Cleared int     `json:"cleared"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// RateOf computes the clear rate for one level's counts.
func RateOf(counts Counts) ClearRate {
	r := ClearRate{Total: counts.Total()}
	for ct, n := range counts {
		if ct.Cleared() {
			r.Cleared += n
		}
	}
	if r.Total > 0 {
		r.Percent = float64(r.Cleared) / float64(r.Total) * 100
	}
	return r
}

// String renders the rate with one decimal place, e.g. "66.7% (2/3)".
func (r ClearRate) String() string {
	return fmt.Sprintf("%.1f%% (%d/%d)", r.Percent, r.Cleared, r.Total)
}
