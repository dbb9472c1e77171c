package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/norregaard/logos-maximus/internal/quote"
)

func renderFavoriteItem(st *styles, q quote.Quote, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var text string
	if selected {
		text = st.favSelected.Render("> " + truncateStr(q.Text, width-4))
	} else {
		text = st.favItem.Render("  " + truncateStr(q.Text, width-4))
	}

	author := q.Author
	if author == "" {
		author = "Unknown"
	}
	return text + "\n" + "  " + st.favAuthor.Render("— "+truncateStr(author, width-4))
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderFavorites(st *styles, favs []quote.Quote, cursor int, active bool, height int, width int) string {
	title := st.paneTitle.Render("Favorites")
	if len(favs) == 0 {
		return title + "\n" + lipglossCenter("No favorites yet", width, height-2)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := (height - 2) / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(favs) {
		end = len(favs)
		start = max(0, end-visible)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for i := start; i < end; i++ {
		b.WriteString(renderFavoriteItem(st, favs[i], active && i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := max(0, (width-lipgloss.Width(s))/2)
	return strings.Repeat("\n", max(0, height/3)) + strings.Repeat(" ", pad) + s
}
