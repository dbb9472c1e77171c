package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/norregaard/logos-maximus/internal/controller"
	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
)

// bridge turns controller.View calls into program messages.
type bridge struct {
	send func(tea.Msg)
}

var _ controller.View = (*bridge)(nil)

func (b *bridge) SetTheme(t prefs.Theme, glyph string) {
	b.send(themeMsg{theme: t, glyph: glyph})
}

func (b *bridge) SetFilter(f prefs.Filter, daily bool) {
	b.send(filterMsg{filter: f, daily: daily})
}

func (b *bridge) ShowLoading() { b.send(loadingMsg{}) }

func (b *bridge) ShowQuote(q controller.QuoteView) { b.send(quoteMsg{quote: q}) }

func (b *bridge) ShowFailure(text string) { b.send(failureMsg{text: text}) }

func (b *bridge) SetFavorite(pressed bool) { b.send(favoriteMsg{pressed: pressed}) }

func (b *bridge) ShowFavorites(list []quote.Quote) {
	b.send(favoritesMsg{list: slices.Clone(list)})
}

func (b *bridge) SetLocation(url string) { b.send(locationMsg{url: url}) }

func (b *bridge) Toast(msg string) { b.send(toastMsg{text: msg}) }

func (b *bridge) FocusMain() { b.send(focusMainMsg{}) }
