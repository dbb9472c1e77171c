package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/norregaard/logos-maximus/internal/controller"
)

// quotePane is what the main region currently shows.
type quotePane struct {
	loading bool
	failure string
	quote   *controller.QuoteView
	// fade indexes styles.fade; it climbs to the last step after a new quote.
	fade int
}

func renderQuote(st *styles, q quotePane, spin string, width, height int) string {
	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	switch {
	case q.loading:
		return lipglossCenter(spin+" "+controller.LoadingText, width, height)
	case q.failure != "":
		return lipglossCenter(st.failure.Render(q.failure), width, height)
	case q.quote == nil:
		return ""
	}

	fade := min(q.fade, len(st.fade)-1)
	text := st.fade[fade].Width(contentWidth).Render(wrapText(q.quote.Text, contentWidth))
	parts := []string{text}
	if q.quote.Author != "" {
		parts = append(parts, st.quoteAuthor.Render(q.quote.Author))
	}
	if q.quote.Category != "" {
		parts = append(parts, st.quoteTag.Render(q.quote.Category))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	lines := strings.Split(content, "\n")
	top := max(0, (height-len(lines))/3)
	lines = append(make([]string, top), lines...)

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if lipgloss.Width(line)+1+lipgloss.Width(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
