package prefs

import (
	"errors"

	"github.com/norregaard/logos-maximus/internal/quote"
)

var ErrCorruptFavorites = errors.New("favorites list is corrupt")

// ToggleFavorite removes q from list when an entry with the same id exists,
// otherwise inserts q at the front. It returns a new slice and whether q
// was added. list is not modified.
func ToggleFavorite(list []quote.Quote, q quote.Quote) ([]quote.Quote, bool) {
	if i := indexOf(list, q.ID); i >= 0 {
		out := make([]quote.Quote, 0, len(list)-1)
		out = append(out, list[:i]...)
		return append(out, list[i+1:]...), false
	}
	out := make([]quote.Quote, 0, len(list)+1)
	out = append(out, q)
	return append(out, list...), true
}

// IsFavorite reports whether list holds a quote with the given id.
func IsFavorite(list []quote.Quote, id string) bool {
	return indexOf(list, id) >= 0
}

// RemoveFavorite drops the entry with the given id, reporting whether one
// was found.
func RemoveFavorite(list []quote.Quote, id string) ([]quote.Quote, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false
	}
	out := make([]quote.Quote, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), true
}

func indexOf(list []quote.Quote, id string) int {
	for i, q := range list {
		if q.ID == id {
			return i
		}
	}
	return -1
}
