package tui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// filterBar shows the category chips followed by the short and daily
// toggles. At most one category is selected; none means all.
type filterBar struct {
	categories []string
	selected   string
	short      bool
	daily      bool
}

func newFilterBar(categories []string) filterBar {
	return filterBar{categories: categories}
}

// categoryAt maps a 1-based chip number to its category. Zero is "All".
func (f *filterBar) categoryAt(n int) (string, bool) {
	if n == 0 {
		return "", true
	}
	if n < 1 || n > len(f.categories) {
		return "", false
	}
	return f.categories[n-1], true
}

// cycle returns the category delta chips away from the selected one,
// wrapping through "All".
func (f *filterBar) cycle(delta int) string {
	n := len(f.categories) + 1
	i := slices.Index(f.categories, f.selected) + 1
	i = ((i+delta)%n + n) % n
	cat, _ := f.categoryAt(i)
	return cat
}

func (f *filterBar) activeLabel() string {
	if f.selected == "" {
		return "All"
	}
	return f.selected
}

func (f *filterBar) render(st *styles, width int) string {
	sep := st.tabSeparator.Render(" · ")

	chip := func(label string, on bool) string {
		if on {
			return st.tabActive.Render(label)
		}
		return st.tabInactive.Render(label)
	}

	parts := []string{chip("All", f.selected == "")}
	for _, c := range f.categories {
		parts = append(parts, chip(c, c == f.selected))
	}
	parts = append(parts, chip("Short", f.short), chip("Daily", f.daily))

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	return st.filterBar.Width(width).Render(row)
}
