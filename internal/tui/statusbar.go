package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(st *styles, toast, filterLabel string, favorites int, hints string, width int) string {
	left := fmt.Sprintf(" %d favorites", favorites)
	if filterLabel != "All" {
		left += " · " + filterLabel
	}
	if toast != "" {
		left = " " + st.toast.Render(toast)
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return st.statusBar.Width(width).Render(bar)
}
