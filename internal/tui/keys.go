package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Favorite  key.Binding
	Copy      key.Binding
	Share     key.Binding
	Theme     key.Binding
	Search    key.Binding
	Category  key.Binding
	PrevCat   key.Binding
	NextCat   key.Binding
	Short     key.Binding
	Daily     key.Binding
	Focus     key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Help      key.Binding
	Quit      key.Binding
	EndSearch key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys(" ", "n", "N"), key.WithHelp("space/n", "new quote")),
		Favorite:  key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f", "favorite")),
		Copy:      key.NewBinding(key.WithKeys("c", "C"), key.WithHelp("c", "copy")),
		Share:     key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "share")),
		Theme:     key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t", "theme")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Category:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "category")),
		PrevCat:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev category")),
		NextCat:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next category")),
		Short:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "short only")),
		Daily:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "daily")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "favorites")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open favorite")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		EndSearch: key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc/enter", "done")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Favorite, k.Copy, k.Share, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Favorite, k.Copy, k.Share, k.Theme},
		{k.Search, k.Category, k.PrevCat, k.NextCat, k.Short, k.Daily},
		{k.Focus, k.Up, k.Down, k.Open},
		{k.Help, k.Quit},
	}
}
