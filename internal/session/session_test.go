package session

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"scoreview/internal/catalog"
	"scoreview/internal/chart"
	"scoreview/internal/state"
	"scoreview/pkg/scorecsv"
)

var header = "バージョン,タイトル,ジャンル,アーティスト,プレー回数," + tierHeaders() + "最終プレー日時"

func tierHeaders() string {
	var b strings.Builder
	for _, tier := range []string{"BEGINNER", "NORMAL", "HYPER", "ANOTHER", "LEGGENDARIA"} {
		for _, col := range []string{"難易度", "スコア", "PGreat", "Great", "ミスカウント", "クリアタイプ", "DJ LEVEL"} {
			b.WriteString(tier + " " + col + ",")
		}
	}
	return b.String()
}

const noChart = "0,0,0,0,---,NO PLAY,---"

const sampleRow = "tricoro,Song A,GENRE,Artist,4," + noChart + "," + noChart +
	",9,1200,500,200,12,HARD CLEAR,A,11,1500,600,300,---,FAILED,B," + noChart + ",2024-03-01 12:00"

func sampleCSV() string { return header + "\n" + sampleRow + "\n" }

func lvl(official int, unofficial string) *catalog.Level {
	l := &catalog.Level{Official: &official}
	if unofficial != "" {
		l.Unofficial = decimal.NewNullDecimal(decimal.RequireFromString(unofficial))
	}
	return l
}

func sampleSources() catalog.Sources {
	return catalog.Sources{
		Catalog: catalog.FromEntries(
			catalog.Entry{Version: "tricoro", Title: "Song A", Hyper: lvl(9, "9.2"), Another: lvl(11, "11.4")},
			catalog.Entry{Version: "GOLD", Title: "Song B", Another: lvl(12, "11.4"), Leggendaria: lvl(12, "")},
		),
		Aliases:      catalog.NewAliasTable(),
		VersionOrder: catalog.VersionOrder{"GOLD", "tricoro"},
	}
}

func TestDefaults(t *testing.T) {
	s := New(catalog.Sources{}, nil, nil, Options{})
	if s.SortKey() != chart.SortClearType || s.Direction() != chart.Asc {
		t.Fatalf("unexpected sort defaults: %s %s", s.SortKey(), s.Direction())
	}
	if s.ItemsPerPage() != 10 || s.CurrentPage() != 1 {
		t.Fatalf("unexpected paging defaults: %d %d", s.ItemsPerPage(), s.CurrentPage())
	}
	if len(s.Scores()) != 0 || len(s.Charts()) != 0 {
		t.Fatal("expected no data")
	}
	if s.CurrentLevel() != chart.UnknownLevel {
		t.Fatalf("unexpected current level: %q", s.CurrentLevel())
	}
}

func TestLoadCSVBuildsCharts(t *testing.T) {
	store := state.NewMemory()
	s := New(sampleSources(), store, zap.NewNop(), Options{})
	s.SetCurrentPage(4)

	sum := s.LoadCSV(sampleCSV())
	if sum.Rows != 1 || sum.Charts != 4 || sum.Played != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if s.CurrentPage() != 1 {
		t.Fatalf("expected page reset, got %d", s.CurrentPage())
	}
	snap, _ := store.Load()
	if snap.CSVText != sampleCSV() {
		t.Fatal("expected csv text to be persisted")
	}

	charts := s.Charts()
	if charts[0].ClearType != scorecsv.ClearHard {
		t.Fatalf("expected clear type asc order, got %s first", charts[0].ClearType)
	}
	if got := s.Levels(); !reflect.DeepEqual(got, []string{"9.2", "11.4", chart.UnknownLevel}) {
		t.Fatalf("levels = %v", got)
	}
	if s.CurrentLevel() != "9.2" {
		t.Fatalf("unexpected current level: %q", s.CurrentLevel())
	}
	stats := s.Stats()
	if stats["11.4"][scorecsv.ClearFailed] != 1 || stats["11.4"][scorecsv.ClearNoPlay] != 1 {
		t.Fatalf("unexpected stats: %v", stats["11.4"])
	}
}

func TestSettersResetPage(t *testing.T) {
	cases := map[string]func(*Session){
		"sort key":       func(s *Session) { s.SetSortKey(chart.SortTitle) },
		"sort direction": func(s *Session) { s.SetSortDirection(chart.Desc) },
		"selected level": func(s *Session) { s.SetSelectedLevel("10.5") },
		"items per page": func(s *Session) { s.SetItemsPerPage(20) },
		"toggle version": func(s *Session) { s.ToggleVersion("GOLD") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := New(sampleSources(), nil, nil, Options{})
			s.SetCurrentPage(5)
			mutate(s)
			if s.CurrentPage() != 1 {
				t.Fatalf("expected page 1, got %d", s.CurrentPage())
			}
		})
	}
}

func TestSetCurrentPage(t *testing.T) {
	s := New(sampleSources(), nil, nil, Options{})
	s.SetCurrentPage(3)
	if s.CurrentPage() != 3 {
		t.Fatalf("unexpected page: %d", s.CurrentPage())
	}
	s.SetSelectedLevel("10.5")
	if s.SelectedLevel() != "10.5" {
		t.Fatalf("unexpected level: %q", s.SelectedLevel())
	}
	s.SetSelectedLevel("")
	if s.SelectedLevel() != "" {
		t.Fatal("expected selection to clear")
	}
}

func TestSetItemsPerPagePersists(t *testing.T) {
	store := state.NewMemory()
	s := New(sampleSources(), store, nil, Options{})
	s.SetItemsPerPage(50)
	snap, _ := store.Load()
	if snap.ItemsPerPage != 50 || s.ItemsPerPage() != 50 {
		t.Fatalf("expected 50 persisted, got %d / %d", snap.ItemsPerPage, s.ItemsPerPage())
	}
	s.SetItemsPerPage(0)
	if s.ItemsPerPage() != 50 {
		t.Fatal("non-positive page size should be ignored")
	}
}

func TestClearData(t *testing.T) {
	store := state.NewMemory()
	s := New(sampleSources(), store, nil, Options{})
	s.LoadCSV(sampleCSV())
	s.SetCurrentPage(2)

	s.ClearData()
	if len(s.Scores()) != 0 || len(s.Charts()) != 0 || s.CSVText() != "" {
		t.Fatal("expected data to be cleared")
	}
	if s.CurrentPage() != 1 {
		t.Fatalf("expected page reset, got %d", s.CurrentPage())
	}
	if snap, _ := store.Load(); snap.HasCSV() {
		t.Fatal("expected persisted csv to be cleared")
	}
}

func TestRestore(t *testing.T) {
	store := state.NewMemory()
	store.SaveCSV(sampleCSV())
	store.SavePageSize(20)

	s := New(sampleSources(), store, nil, Options{})
	if !s.Restore() {
		t.Fatal("expected restore")
	}
	if s.ItemsPerPage() != 20 || len(s.Scores()) != 1 {
		t.Fatalf("unexpected restored state: %d per page, %d scores", s.ItemsPerPage(), len(s.Scores()))
	}

	empty := New(sampleSources(), state.NewMemory(), nil, Options{})
	if empty.Restore() {
		t.Fatal("expected nothing to restore")
	}
}

func TestToggleVersionFiltersCharts(t *testing.T) {
	s := New(sampleSources(), nil, nil, Options{})
	s.LoadCSV(sampleCSV())
	if len(s.Charts()) != 4 {
		t.Fatalf("expected 4 charts, got %d", len(s.Charts()))
	}

	s.ToggleVersion("GOLD")
	if len(s.Charts()) != 2 || s.VersionEnabled("GOLD") {
		t.Fatalf("expected GOLD hidden, got %d charts", len(s.Charts()))
	}
	if got := s.AvailableVersions(); !reflect.DeepEqual(got, []string{"GOLD", "tricoro"}) {
		t.Fatalf("available versions = %v", got)
	}
	if got := s.DisabledVersions(); !reflect.DeepEqual(got, []string{"GOLD"}) {
		t.Fatalf("disabled versions = %v", got)
	}

	s.ToggleVersion("GOLD")
	if len(s.Charts()) != 4 {
		t.Fatal("expected GOLD visible again")
	}
}

func TestPage(t *testing.T) {
	s := New(sampleSources(), nil, nil, Options{ItemsPerPage: 1})
	s.LoadCSV(sampleCSV())
	s.SetSelectedLevel("11.4")

	p := s.Page()
	if p.TotalPages != 2 || len(p.Charts) != 1 {
		t.Fatalf("unexpected page: %+v", p)
	}
	s.SetCurrentPage(2)
	if second := s.Page(); len(second.Charts) != 1 || second.Charts[0].DisplayTitle == p.Charts[0].DisplayTitle {
		t.Fatalf("unexpected second page: %+v", second)
	}
}

type failingStore struct{}

var errUnavailable = errors.New("storage unavailable")

func (failingStore) Load() (state.Snapshot, error) { return state.Snapshot{}, errUnavailable }
func (failingStore) SaveCSV(string) error { return errUnavailable }
func (failingStore) ClearCSV() error { return errUnavailable }
func (failingStore) SavePageSize(int) error { return errUnavailable }
func (failingStore) Close() error { return nil }

func TestStoreFailuresAreSwallowed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(sampleSources(), failingStore{}, zap.New(core), Options{})

	if s.Restore() {
		t.Fatal("restore should report nothing restored")
	}
	sum := s.LoadCSV(sampleCSV())
	if sum.Charts != 4 {
		t.Fatalf("load should succeed without storage, got %d charts", sum.Charts)
	}
	s.SetItemsPerPage(20)
	s.ClearData()

	if got := logs.Len(); got != 4 {
		t.Fatalf("expected 4 warnings, got %d", got)
	}
}

func TestSetSourcesReconciles(t *testing.T) {
	s := New(catalog.Empty(), nil, nil, Options{})
	s.LoadCSV(sampleCSV())
	if len(s.Charts()) != 0 || !reflect.DeepEqual(s.Unmatched(), []string{"Song A"}) {
		t.Fatalf("expected no charts against empty catalog, got %d", len(s.Charts()))
	}
	s.SetSources(sampleSources())
	if len(s.Charts()) != 4 || len(s.Unmatched()) != 0 {
		t.Fatalf("expected charts after reload, got %d", len(s.Charts()))
	}
}
