package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scoreview/internal/chart"
	"scoreview/internal/session"
)

// PageSizes are the page sizes the browser cycles through.
var PageSizes = []int{10, 20, 50, 100}

// Column defines a single column in the chart table.
type Column struct {
	Header string
	Width  int
}

var browserColumns = []Column{
	{Header: "TIER", Width: 4},
	{Header: "LAMP", Width: 6},
	{Header: "TITLE", Width: 36},
	{Header: "DJ", Width: 3},
	{Header: "SCORE", Width: 5},
	{Header: "MISS", Width: 4},
	{Header: "VER", Width: 5},
	{Header: "LAST PLAY", Width: 16},
}

// BrowserModel is a bubbletea model that pages through one level of the
// session's charts at a time.
type BrowserModel struct {
	sess *session.Session
	help help.Model
	quit bool
}

// NewBrowserModel wraps sess. The model mutates sess in response to keys.
func NewBrowserModel(sess *session.Session) BrowserModel {
	h := help.New()
	h.Styles.ShortKey = HelpStyle
	h.Styles.ShortDesc = HelpStyle
	return BrowserModel{sess: sess, help: h}
}

// Init satisfies the tea.Model interface.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update satisfies the tea.Model interface.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.sess
	switch {
	case key.Matches(msg, keys.Quit):
		m.quit = true
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.NextLevel):
		m.shiftLevel(1)
	case key.Matches(msg, keys.PrevLevel):
		m.shiftLevel(-1)
	case key.Matches(msg, keys.NextPage):
		if page := s.Page(); s.CurrentPage() < page.TotalPages {
			s.SetCurrentPage(s.CurrentPage() + 1)
		}
	case key.Matches(msg, keys.PrevPage):
		if s.CurrentPage() > 1 {
			s.SetCurrentPage(s.CurrentPage() - 1)
		}
	case key.Matches(msg, keys.Sort):
		s.SetSortKey(nextSortKey(s.SortKey()))
	case key.Matches(msg, keys.Direction):
		s.SetSortDirection(s.Direction().Toggle())
	case key.Matches(msg, keys.Grow):
		s.SetItemsPerPage(nextPageSize(s.ItemsPerPage(), 1))
	case key.Matches(msg, keys.Shrink):
		s.SetItemsPerPage(nextPageSize(s.ItemsPerPage(), -1))
	}
	return m, nil
}

func (m BrowserModel) shiftLevel(delta int) {
	levels := m.sess.Levels()
	if len(levels) == 0 {
		return
	}
	current := m.sess.CurrentLevel()
	idx := 0
	for i, l := range levels {
		if l == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(levels)) % len(levels)
	m.sess.SetSelectedLevel(levels[idx])
}

func nextSortKey(k chart.SortKey) chart.SortKey {
	for i, key := range chart.SortKeys {
		if key == k {
			return chart.SortKeys[(i+1)%len(chart.SortKeys)]
		}
	}
	return chart.SortKeys[0]
}

func nextPageSize(current, delta int) int {
	idx := 0
	for i, size := range PageSizes {
		if size >= current {
			idx = i
			break
		}
		idx = i
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(PageSizes) {
		idx = len(PageSizes) - 1
	}
	return PageSizes[idx]
}

// Quit reports whether the user asked to leave.
func (m BrowserModel) Quit() bool {
	return m.quit
}

// View satisfies the tea.Model interface.
func (m BrowserModel) View() string {
	if m.quit {
		return ""
	}
	s := m.sess
	var b strings.Builder

	level := s.CurrentLevel()
	page := s.Page()
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Level %s", level)))
	fmt.Fprintf(&b, "  %s\n", chart.RateOf(s.Stats()[level]))
	b.WriteString(m.levelBar(level))
	b.WriteString("\n\n")

	if len(s.AllCharts()) == 0 {
		b.WriteString("No charts loaded. Run `scoreview load <export.csv>` first.\n")
		b.WriteString(HelpStyle.Render("q quit"))
		b.WriteByte('\n')
		return b.String()
	}

	headers := make([]string, len(browserColumns))
	for i, col := range browserColumns {
		headers[i] = HeaderStyle.Render(Pad(col.Header, col.Width))
	}
	b.WriteString(strings.Join(headers, "  "))
	b.WriteByte('\n')

	for _, c := range page.Charts {
		b.WriteString(renderRow(c))
		b.WriteByte('\n')
	}
	for i := len(page.Charts); i < page.PerPage; i++ {
		b.WriteByte('\n')
	}

	total := max(page.TotalPages, 1)
	fmt.Fprintf(&b, "\npage %d/%d  %d charts  sort %s %s  %d per page\n",
		page.Number, total, page.Total, s.SortKey(), s.Direction(), page.PerPage)
	b.WriteString(m.help.View(keys))
	b.WriteByte('\n')
	return b.String()
}

func (m BrowserModel) levelBar(current string) string {
	levels := m.sess.Levels()
	parts := make([]string, len(levels))
	for i, l := range levels {
		if l == current {
			parts[i] = SelectedStyle.Render(" " + l + " ")
		} else {
			parts[i] = " " + l + " "
		}
	}
	return strings.Join(parts, "")
}

func renderRow(c chart.Chart) string {
	miss := "-"
	if c.MissCount != nil {
		miss = strconv.Itoa(*c.MissCount)
	}
	lamp := chart.ClearLabel(c.ClearType)
	fields := []string{
		TierStyle(c.Difficulty).Render(Pad(chart.TierBadge(c.Difficulty)+strconv.Itoa(c.OfficialLevel), browserColumns[0].Width)),
		ClearStyle(c.ClearType).Render(Pad(lamp, browserColumns[1].Width)),
		Pad(TruncateWithEllipsis(c.DisplayTitle, browserColumns[2].Width), browserColumns[2].Width),
		Pad(string(c.DJLevel), browserColumns[3].Width),
		Pad(strconv.Itoa(c.Score), browserColumns[4].Width),
		Pad(miss, browserColumns[5].Width),
		Pad(TruncateWithEllipsis(chart.VersionAbbrev(c.Version), browserColumns[6].Width), browserColumns[6].Width),
		Pad(NonEmptyOrDash(c.LastPlayDate), browserColumns[7].Width),
	}
	return strings.Join(fields, "  ")
}

// RunBrowser starts the interactive browser and blocks until the user quits.
func RunBrowser(model BrowserModel, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}
