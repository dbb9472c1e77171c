package tui

import (
	"github.com/norregaard/logos-maximus/internal/controller"
	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
)

type themeMsg struct {
	theme prefs.Theme
	glyph string
}

type filterMsg struct {
	filter prefs.Filter
	daily  bool
}

type loadingMsg struct{}

type quoteMsg struct {
	quote controller.QuoteView
}

type failureMsg struct {
	text string
}

type favoriteMsg struct {
	pressed bool
}

type favoritesMsg struct {
	list []quote.Quote
}

type locationMsg struct {
	url string
}

type toastMsg struct {
	text string
}

type toastExpiredMsg struct {
	id int
}

type focusMainMsg struct{}

type fadeTickMsg struct{}
