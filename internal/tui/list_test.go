package tui

import (
	"strings"
	"testing"

	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("Γνῶθι σεαυτόν", 8)
	want := "Γνῶθι..."
	if got != want {
		t.Errorf("truncateStr(Greek, 8) = %q, want %q", got, want)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("The unexamined life is not worth living", 12)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 12 {
			t.Errorf("line %q exceeds width 12", line)
		}
	}
	if strings.Join(strings.Fields(got), " ") != "The unexamined life is not worth living" {
		t.Errorf("wrapText lost words: %q", got)
	}
}

func TestRenderFavoritesEmpty(t *testing.T) {
	st := newStyles(prefs.ThemeLight)
	got := renderFavorites(&st, nil, 0, false, 10, 30)
	if !strings.Contains(got, "No favorites yet") {
		t.Errorf("expected empty message, got %q", got)
	}
}

func TestRenderFavoritesMarksCursorOnlyWhenActive(t *testing.T) {
	st := newStyles(prefs.ThemeDark)
	favs := []quote.Quote{
		{ID: "1", Text: "Know thyself", Author: "Socrates"},
		{ID: "2", Text: "Nothing in excess"},
	}

	got := renderFavorites(&st, favs, 1, true, 12, 40)
	if !strings.Contains(got, "> Nothing in excess") {
		t.Errorf("expected cursor on second favorite, got %q", got)
	}
	if !strings.Contains(got, "— Unknown") {
		t.Errorf("expected placeholder author, got %q", got)
	}

	got = renderFavorites(&st, favs, 1, false, 12, 40)
	if strings.Contains(got, ">") {
		t.Errorf("inactive pane should not show a cursor, got %q", got)
	}
}
