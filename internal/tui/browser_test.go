package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"scoreview/internal/catalog"
	"scoreview/internal/chart"
	"scoreview/internal/session"
)

func level(official int, unofficial string) *catalog.Level {
	return &catalog.Level{
		Official:   &official,
		Unofficial: decimal.NewNullDecimal(decimal.RequireFromString(unofficial)),
	}
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	var entries []catalog.Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, catalog.Entry{
			Version: "tricoro",
			Title:   "Song " + string(rune('A'+i)),
			Another: level(11, "11.2"),
		})
	}
	entries = append(entries, catalog.Entry{Version: "GOLD", Title: "冥", Another: level(12, "12.6")})

	src := catalog.Sources{
		Catalog:      catalog.FromEntries(entries...),
		Aliases:      catalog.NewAliasTable(),
		VersionOrder: catalog.VersionOrder{"GOLD", "tricoro"},
	}
	return session.New(src, nil, nil, session.Options{})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m BrowserModel, keys ...string) (BrowserModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(BrowserModel)
	}
	return m, cmd
}

func TestBrowserEmptySession(t *testing.T) {
	m := NewBrowserModel(session.New(catalog.Empty(), nil, nil, session.Options{}))
	if !strings.Contains(m.View(), "No charts loaded") {
		t.Fatalf("expected empty hint, got:\n%s", m.View())
	}
}

func TestBrowserLevelNavigation(t *testing.T) {
	s := newTestSession(t)
	s.LoadCSV("")
	m := NewBrowserModel(s)

	if s.CurrentLevel() != "11.2" {
		t.Fatalf("unexpected initial level: %q", s.CurrentLevel())
	}
	m, _ = press(m, "right")
	if s.CurrentLevel() != "12.6" {
		t.Fatalf("expected 12.6 after right, got %q", s.CurrentLevel())
	}
	m, _ = press(m, "right")
	if s.CurrentLevel() != "11.2" {
		t.Fatalf("expected wrap to 11.2, got %q", s.CurrentLevel())
	}
	press(m, "left")
	if s.CurrentLevel() != "12.6" {
		t.Fatalf("expected wrap back to 12.6, got %q", s.CurrentLevel())
	}
}

func TestBrowserPaging(t *testing.T) {
	s := newTestSession(t)
	s.LoadCSV("")
	m := NewBrowserModel(s)

	m, _ = press(m, "down")
	if s.CurrentPage() != 2 {
		t.Fatalf("expected page 2, got %d", s.CurrentPage())
	}
	m, _ = press(m, "down")
	if s.CurrentPage() != 2 {
		t.Fatalf("expected to stay on last page, got %d", s.CurrentPage())
	}
	if view := m.View(); !strings.Contains(view, "page 2/2") {
		t.Fatalf("expected page footer, got:\n%s", view)
	}
	m, _ = press(m, "+")
	if s.ItemsPerPage() != 20 || s.CurrentPage() != 1 {
		t.Fatalf("expected 20 per page on page 1, got %d on %d", s.ItemsPerPage(), s.CurrentPage())
	}
	press(m, "-", "-")
	if s.ItemsPerPage() != 10 {
		t.Fatalf("expected page size floor of 10, got %d", s.ItemsPerPage())
	}
}

func TestBrowserSortKeys(t *testing.T) {
	s := newTestSession(t)
	s.LoadCSV("")
	m := NewBrowserModel(s)

	m, _ = press(m, "s")
	if s.SortKey() != chart.SortLastPlayDate {
		t.Fatalf("expected next sort key after clearType, got %s", s.SortKey())
	}
	press(m, "d")
	if s.Direction() != chart.Desc {
		t.Fatalf("expected desc, got %s", s.Direction())
	}
}

func TestBrowserViewRendersRows(t *testing.T) {
	s := newTestSession(t)
	s.LoadCSV("")
	s.SetSelectedLevel("12.6")
	view := NewBrowserModel(s).View()
	for _, want := range []string{"Level 12.6", "冥", "NP", "GOLD"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestBrowserQuit(t *testing.T) {
	m, cmd := press(NewBrowserModel(newTestSession(t)), "q")
	if !m.Quit() || cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestTruncateWithEllipsisWide(t *testing.T) {
	if got := TruncateWithEllipsis("あいうえお", 7); got != "あい..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateWithEllipsis("short", 10); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Pad("冥", 4); got != "冥  " {
		t.Fatalf("unexpected pad: %q", got)
	}
}

func TestDetectModeJSON(t *testing.T) {
	var b strings.Builder
	if DetectMode(&b, false, true) != ModeJSON {
		t.Fatal("expected JSON mode")
	}
	if DetectMode(&b, false, false) != ModePlain {
		t.Fatal("expected plain mode for non-terminal writer")
	}
}

func TestBrowserHelpToggle(t *testing.T) {
	s := newTestSession(t)
	s.LoadCSV("")
	m := NewBrowserModel(s)
	if strings.Contains(m.View(), "smaller pages") {
		t.Fatal("expected short help by default")
	}
	m, _ = press(m, "?")
	if !strings.Contains(m.View(), "smaller pages") {
		t.Fatalf("expected full help after ?, got:\n%s", m.View())
	}
}
