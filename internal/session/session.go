// Package session holds the view state of one user: the loaded export, the
// reconciled charts and the sort, level, page and version selections. Every
// mutation recomputes the derived collection eagerly; readers only see the
// output of the last completed reconcile and sort.
package session

import (
	"sort"
	"strings"

	metrics "github.com/rcrowley/go-metrics"
	"go.uber.org/zap"

	"scoreview/internal/catalog"
	"scoreview/internal/chart"
	"scoreview/internal/state"
	"scoreview/pkg/scorecsv"
)

var (
	rowsParsed  = metrics.NewRegisteredCounter("csv.rows.parsed", metrics.DefaultRegistry)
	parseIssues = metrics.NewRegisteredCounter("csv.issues", metrics.DefaultRegistry)
)

// Options seeds a new Session. Zero fields take the defaults.
type Options struct {
	SortKey          chart.SortKey
	Direction        chart.Direction
	ItemsPerPage     int
	DisabledVersions []string
}

// LoadSummary describes the outcome of a CSV load.
type LoadSummary struct {
	Rows      int             `json:"rows"`
	Charts    int             `json:"charts"`
	Played    int             `json:"played"`
	Unmatched []string        `json:"unmatched"`
	Issues    scorecsv.Issues `json:"issues,omitempty"`
}

// Session is not safe for concurrent use; it has one writer, the UI loop.
type Session struct {
	sources catalog.Sources
	store   state.Store
	log     *zap.Logger

	csvText   string
	scores    []scorecsv.ScoreEntry
	charts    []chart.Chart
	unmatched []string
	issues    scorecsv.Issues

	sortKey       chart.SortKey
	direction     chart.Direction
	selectedLevel string
	currentPage   int
	itemsPerPage  int
	disabled      map[string]struct{}
}

// New returns an empty session over the given reference data. A nil store
// keeps state in memory only.
func New(src catalog.Sources, store state.Store, log *zap.Logger, opts Options) *Session {
	if store == nil {
		store = state.NewMemory()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if src.Catalog == nil || src.Aliases == nil || src.VersionOrder == nil {
		empty := catalog.Empty()
		if src.Catalog == nil {
			src.Catalog = empty.Catalog
		}
		if src.Aliases == nil {
			src.Aliases = empty.Aliases
		}
		if src.VersionOrder == nil {
			src.VersionOrder = empty.VersionOrder
		}
	}

	s := &Session{
		sources:      src,
		store:        store,
		log:          log,
		charts:       []chart.Chart{},
		sortKey:      chart.SortClearType,
		direction:    chart.Asc,
		currentPage:  1,
		itemsPerPage: state.DefaultItemsPerPage,
		disabled:     make(map[string]struct{}),
	}
	if opts.SortKey != "" {
		s.sortKey = opts.SortKey
	}
	if opts.Direction != "" {
		s.direction = opts.Direction
	}
	if opts.ItemsPerPage > 0 {
		s.itemsPerPage = opts.ItemsPerPage
	}
	for _, v := range opts.DisabledVersions {
		s.disabled[v] = struct{}{}
	}
	return s
}

// Restore re-feeds the persisted export and page size. It reports whether an
// export was restored. Store failures are logged and treated as empty.
func (s *Session) Restore() bool {
	snap, err := s.store.Load()
	if err != nil {
		s.log.Warn("state read failed", zap.Error(err))
		return false
	}
	if snap.ItemsPerPage > 0 {
		s.itemsPerPage = snap.ItemsPerPage
	}
	if !snap.HasCSV() {
		return false
	}
	s.ingest(snap.CSVText)
	s.currentPage = 1
	s.log.Info("restored score export", zap.Int("rows", len(s.scores)), zap.Int("charts", len(s.charts)))
	return true
}

// LoadCSV replaces the loaded export with text, persists it and resets the
// page.
func (s *Session) LoadCSV(text string) LoadSummary {
	s.ingest(text)
	s.currentPage = 1
	if err := s.store.SaveCSV(text); err != nil {
		s.log.Warn("state write failed", zap.String("key", "csvText"), zap.Error(err))
	}

	sum := LoadSummary{
		Rows:      len(s.scores),
		Charts:    len(s.charts),
		Unmatched: s.unmatched,
		Issues:    s.issues,
	}
	for _, c := range s.charts {
		if c.ClearType != scorecsv.ClearNoPlay {
			sum.Played++
		}
	}
	s.log.Info("loaded score export",
		zap.Int("rows", sum.Rows),
		zap.Int("charts", sum.Charts),
		zap.Int("unmatched", len(sum.Unmatched)),
		zap.Int("issues", len(sum.Issues)),
	)
	return sum
}

// ClearData drops the export and everything derived from it.
func (s *Session) ClearData() {
	s.csvText = ""
	s.scores = nil
	s.charts = []chart.Chart{}
	s.unmatched = nil
	s.issues = nil
	s.currentPage = 1
	if err := s.store.ClearCSV(); err != nil {
		s.log.Warn("state clear failed", zap.Error(err))
	}
}

// SetSources swaps in new reference data and reconciles the loaded export
// against it.
func (s *Session) SetSources(src catalog.Sources) {
	s.sources = src
	if s.csvText != "" || len(s.charts) > 0 {
		s.rebuild()
	}
}

func (s *Session) ingest(text string) {
	s.csvText = text
	s.scores, s.issues = scorecsv.ParseReport(text)
	rowsParsed.Inc(int64(len(s.scores)))
	parseIssues.Inc(int64(len(s.issues)))
	s.rebuild()
}

func (s *Session) rebuild() {
	cat, aliases := s.sources.Catalog, s.sources.Aliases
	charts, unmatched := chart.ReconcileReport(s.scores, cat, aliases)
	s.unmatched = unmatched
	s.charts = chart.Sort(charts, s.sortKey, s.direction, s.sources.VersionOrder)
}

// SetSortKey re-sorts and resets the page.
func (s *Session) SetSortKey(key chart.SortKey) {
	s.sortKey = key
	s.charts = chart.Sort(s.charts, s.sortKey, s.direction, s.sources.VersionOrder)
	s.currentPage = 1
}

// SetSortDirection re-sorts and resets the page.
func (s *Session) SetSortDirection(dir chart.Direction) {
	s.direction = dir
	s.charts = chart.Sort(s.charts, s.sortKey, s.direction, s.sources.VersionOrder)
	s.currentPage = 1
}

// SetSelectedLevel selects a level key; the empty string clears the
// selection.
func (s *Session) SetSelectedLevel(level string) {
	s.selectedLevel = strings.TrimSpace(level)
	s.currentPage = 1
}

// SetCurrentPage sets the 1-based page without validation against the page
// count.
func (s *Session) SetCurrentPage(page int) {
	if page < 1 {
		page = 1
	}
	s.currentPage = page
}

// SetItemsPerPage changes and persists the page size. Non-positive sizes are
// ignored.
func (s *Session) SetItemsPerPage(n int) {
	if n < 1 {
		return
	}
	s.itemsPerPage = n
	s.currentPage = 1
	if err := s.store.SavePageSize(n); err != nil {
		s.log.Warn("state write failed", zap.String("key", "itemsPerPage"), zap.Error(err))
	}
}

// ToggleVersion flips whether charts of version are hidden.
func (s *Session) ToggleVersion(version string) {
	if _, off := s.disabled[version]; off {
		delete(s.disabled, version)
	} else {
		s.disabled[version] = struct{}{}
	}
	s.currentPage = 1
}

// VersionEnabled reports whether charts of version are visible.
func (s *Session) VersionEnabled(version string) bool {
	_, off := s.disabled[version]
	return !off
}

// HasData reports whether an export is loaded.
func (s *Session) HasData() bool { return len(s.scores) > 0 }

func (s *Session) CSVText() string { return s.csvText }
func (s *Session) Scores() []scorecsv.ScoreEntry { return s.scores }
func (s *Session) Issues() scorecsv.Issues { return s.issues }
func (s *Session) Unmatched() []string { return s.unmatched }
func (s *Session) SortKey() chart.SortKey { return s.sortKey }
func (s *Session) Direction() chart.Direction { return s.direction }
func (s *Session) SelectedLevel() string { return s.selectedLevel }
func (s *Session) CurrentPage() int { return s.currentPage }
func (s *Session) ItemsPerPage() int { return s.itemsPerPage }
func (s *Session) Sources() catalog.Sources { return s.sources }
func (s *Session) AllCharts() []chart.Chart { return s.charts }
func (s *Session) VersionOrder() catalog.VersionOrder { return s.sources.VersionOrder }

// Charts is the sorted collection with disabled versions removed.
func (s *Session) Charts() []chart.Chart {
	if len(s.disabled) == 0 {
		return s.charts
	}
	return chart.FilterVersions(s.charts, s.disabled)
}

// DisabledVersions lists hidden versions in version order.
func (s *Session) DisabledVersions() []string {
	out := make([]string, 0, len(s.disabled))
	for _, v := range s.sources.VersionOrder {
		if _, off := s.disabled[v]; off {
			out = append(out, v)
		}
	}
	var rest []string
	for v := range s.disabled {
		if s.sources.VersionOrder.Rank(v) == catalog.UnknownVersionRank {
			rest = append(rest, v)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// AvailableVersions lists versions present in the loaded charts, including
// disabled ones.
func (s *Session) AvailableVersions() []string {
	return chart.AvailableVersions(s.charts, s.sources.VersionOrder)
}

// ByLevel groups the visible charts by level key.
func (s *Session) ByLevel() map[string][]chart.Chart {
	return chart.GroupByLevel(s.Charts())
}

// Stats counts clear types per level over the visible charts.
func (s *Session) Stats() map[string]chart.Counts {
	return chart.GroupStats(s.Charts())
}

// Levels lists the visible level keys in display order.
func (s *Session) Levels() []string {
	return chart.SortedLevels(s.ByLevel())
}

// CurrentLevel is the selected level, else the first level, else
// chart.UnknownLevel.
func (s *Session) CurrentLevel() string {
	if s.selectedLevel != "" {
		return s.selectedLevel
	}
	if levels := s.Levels(); len(levels) > 0 {
		return levels[0]
	}
	return chart.UnknownLevel
}

// Page returns the current page of the current level.
func (s *Session) Page() chart.Page {
	return chart.Paginate(s.ByLevel()[s.CurrentLevel()], s.currentPage, s.itemsPerPage)
}
