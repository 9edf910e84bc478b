package chart

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"scoreview/internal/catalog"
)

// SortKey selects the field the collection is ordered by.
type SortKey string

const (
	SortVersion      SortKey = "version"
	SortTitle        SortKey = "title"
	SortMissCount    SortKey = "missCount"
	SortClearType    SortKey = "clearType"
	SortLastPlayDate SortKey = "lastPlayDate"
)

// SortKeys lists the accepted keys.
var SortKeys = []SortKey{SortVersion, SortTitle, SortMissCount, SortClearType, SortLastPlayDate}

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortKey validates a user-supplied sort key. Matching ignores case.
func ParseSortKey(value string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), strings.TrimSpace(value)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", value)
}

// ParseDirection validates a user-supplied direction.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asc", "":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", value)
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Japanese)

	// titleKeys memoizes collation keys by title; keys are deterministic so
	// the cache never changes sort results.
	titleKeys = cache.New(cache.NoExpiration, 0)
)

func titleKey(title string) []byte {
	if v, ok := titleKeys.Get(title); ok {
		return v.([]byte)
	}
	collatorMu.Lock()
	var buf collate.Buffer
	key := append([]byte(nil), collator.KeyFromString(&buf, title)...)
	collatorMu.Unlock()
	titleKeys.Set(title, key, cache.NoExpiration)
	return key
}

type sortItem struct {
	chart Chart
	title []byte
	rank  int
}

// Sort returns a stably ordered copy of data. Descending negates the
// ascending comparison, except that charts without a miss count stay last
// under SortMissCount in both directions.
func Sort(data []Chart, key SortKey, dir Direction, versionOrder catalog.VersionOrder) []Chart {
	start := time.Now()
	defer sortTimer.UpdateSince(start)

	ranks := versionOrder.Index()
	items := make([]sortItem, len(data))
	for i, c := range data {
		items[i] = sortItem{chart: c}
		switch key {
		case SortTitle:
			items[i].title = titleKey(c.DisplayTitle)
		case SortVersion:
			items[i].rank = catalog.UnknownVersionRank
			if r, ok := ranks[c.Version]; ok {
				items[i].rank = r
			}
		}
	}

	slices.SortStableFunc(items, func(a, b sortItem) int {
		if key == SortMissCount && (a.chart.MissCount == nil || b.chart.MissCount == nil) {
			return nilLast(a.chart.MissCount == nil, b.chart.MissCount == nil)
		}
		c := compareItems(a, b, key)
		if dir == Desc {
			return -c
		}
		return c
	})

	out := make([]Chart, len(items))
	for i, it := range items {
		out[i] = it.chart
	}
	return out
}

func nilLast(aNil, bNil bool) int {
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return 1
	default:
		return -1
	}
}

func compareItems(a, b sortItem, key SortKey) int {
	switch key {
	case SortVersion:
		return cmp.Compare(a.rank, b.rank)
	case SortTitle:
		return bytes.Compare(a.title, b.title)
	case SortMissCount:
		return cmp.Compare(*a.chart.MissCount, *b.chart.MissCount)
	case SortClearType:
		return cmp.Compare(a.chart.ClearType.Rank(), b.chart.ClearType.Rank())
	case SortLastPlayDate:
		return strings.Compare(a.chart.LastPlayDate, b.chart.LastPlayDate)
	}
	return 0
}
