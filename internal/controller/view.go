package controller

import (
	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
)

const (
	LoadingText = "Loading wisdom…"
	FailureText = "Failed to load quote."

	ToastAdded      = "Added to favorites"
	ToastRemoved    = "Removed from favorites"
	ToastCopied     = "Copied to clipboard"
	ToastCopyFailed = "Copy failed"
	ToastShareFail  = "Share failed"
)

// QuoteView is a quote formatted for display.
type QuoteView struct {
	Text     string // in curly quotes
	Author   string // "— Author", or empty
	Category string
}

// View receives every presentation change. All calls come from the
// controller loop goroutine, one at a time.
type View interface {
	SetTheme(t prefs.Theme, glyph string)
	SetFilter(f prefs.Filter, daily bool)
	ShowLoading()
	// ShowQuote renders q with a fade-in.
	ShowQuote(q QuoteView)
	// ShowFailure replaces the quote text and clears author and category.
	ShowFailure(text string)
	SetFavorite(pressed bool)
	ShowFavorites(list []quote.Quote)
	SetLocation(url string)
	Toast(msg string)
	// FocusMain moves focus to the quote region.
	FocusMain()
}

// Present formats q for display.
func Present(q quote.Quote) QuoteView {
	v := QuoteView{Text: "“" + q.Text + "”", Category: q.Category}
	if q.Author != "" {
		v.Author = "— " + q.Author
	}
	return v
}
