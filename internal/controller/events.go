package controller

import "github.com/norregaard/logos-maximus/internal/quote"

// Event is an input to the controller loop. Front ends post the exported
// events; the loop posts the unexported ones to itself.
type Event interface {
	event()
}

// Refresh fetches a new quote with the current filters.
type Refresh struct{}

// SelectCategory makes Category the single selected category. An empty
// Category selects all.
type SelectCategory struct{ Category string }

// ToggleShort flips the short-quotes filter.
type ToggleShort struct{}

// SearchInput reports the current content of the search box. Fetching is
// debounced.
type SearchInput struct{ Text string }

type ToggleDaily struct{}

type ToggleTheme struct{}

// ToggleFavorite adds or removes the current quote from the favorites.
type ToggleFavorite struct{}

type Copy struct{}

type Share struct{}

// OpenFavorite navigates to the favorite with the given id.
type OpenFavorite struct{ ID string }

// KeyPress is a raw key from the front end. Shortcuts are ignored while
// InTextInput is set.
type KeyPress struct {
	Key         string
	InTextInput bool
}

type fetchDone struct {
	seq   uint64
	opts  quote.Options
	quote quote.Quote
	err   error
}

type searchSettled struct{ gen uint64 }

func (Refresh) event()        {}
func (SelectCategory) event() {}
func (ToggleShort) event()    {}
func (SearchInput) event()    {}
func (ToggleDaily) event()    {}
func (ToggleTheme) event()    {}
func (ToggleFavorite) event() {}
func (Copy) event()           {}
func (Share) event()          {}
func (OpenFavorite) event()   {}
func (KeyPress) event()       {}
func (fetchDone) event()      {}
func (searchSettled) event()  {}
