package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Sort      key.Binding
	Direction key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Help      key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	NextLevel: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next level")),
	PrevLevel: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
	NextPage:  key.NewBinding(key.WithKeys("down", "j", "pgdown", "n"), key.WithHelp("↓", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("up", "k", "pgup", "p"), key.WithHelp("↑", "prev page")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort key")),
	Direction: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "direction")),
	Grow:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "larger pages")),
	Shrink:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller pages")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
}

// ShortHelp satisfies help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextLevel, k.NextPage, k.Sort, k.Direction, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextLevel, k.PrevLevel, k.NextPage, k.PrevPage},
		{k.Sort, k.Direction, k.Grow, k.Shrink},
		{k.Help, k.Quit},
	}
}
