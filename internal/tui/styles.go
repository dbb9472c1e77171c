package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/norregaard/logos-maximus/internal/prefs"
)

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	dim       lipgloss.Color
	accent    lipgloss.Color
	border    lipgloss.Color
	activeBdr lipgloss.Color
	tabActive lipgloss.Color
	tabBg     lipgloss.Color
	surface   lipgloss.Color
	statusBg  lipgloss.Color
	statusFg  lipgloss.Color
	green     lipgloss.Color
	// fade runs from barely visible to the full quote color.
	fade []lipgloss.Color
}

var lightPalette = palette{
	primary:   "#5A56E0",
	secondary: "#3D3D3D",
	dim:       "#9B9B9B",
	accent:    "#F25D94",
	border:    "#DBDBDB",
	activeBdr: "#5A56E0",
	tabActive: "#5A56E0",
	tabBg:     "#EEEEEE",
	surface:   "#F5F5F5",
	statusBg:  "#E8E8E8",
	statusFg:  "#3D3D3D",
	green:     "#04B575",
	fade:      []lipgloss.Color{"#E0E0E0", "#B0B0B0", "#707070", "#1A1A1A"},
}

var darkPalette = palette{
	primary:   "#7571F9",
	secondary: "#ABABAB",
	dim:       "#626262",
	accent:    "#F25D94",
	border:    "#383838",
	activeBdr: "#7571F9",
	tabActive: "#7571F9",
	tabBg:     "#2A2A3E",
	surface:   "#1E1E2E",
	statusBg:  "#16213E",
	statusFg:  "#ABABAB",
	green:     "#25D366",
	fade:      []lipgloss.Color{"#2A2A2A", "#555555", "#9A9A9A", "#EDEDED"},
}

type styles struct {
	header       lipgloss.Style
	headerDim    lipgloss.Style
	pane         lipgloss.Style
	paneActive   lipgloss.Style
	quoteAuthor  lipgloss.Style
	quoteTag     lipgloss.Style
	failure      lipgloss.Style
	favItem      lipgloss.Style
	favSelected  lipgloss.Style
	favAuthor    lipgloss.Style
	paneTitle    lipgloss.Style
	tabActive    lipgloss.Style
	tabInactive  lipgloss.Style
	tabSeparator lipgloss.Style
	filterBar    lipgloss.Style
	statusBar    lipgloss.Style
	toast        lipgloss.Style
	spinner      lipgloss.Style
	searchPrompt lipgloss.Style
	pressed      lipgloss.Style
	fade         []lipgloss.Style
}

func newStyles(t prefs.Theme) styles {
	p := lightPalette
	if t == prefs.ThemeDark {
		p = darkPalette
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border)

	s := styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			PaddingLeft(1),
		headerDim: lipgloss.NewStyle().
			Foreground(p.dim),
		pane:       pane,
		paneActive: pane.BorderForeground(p.activeBdr),
		quoteAuthor: lipgloss.NewStyle().
			Foreground(p.green).
			MarginTop(1),
		quoteTag: lipgloss.NewStyle().
			Foreground(p.dim).
			Italic(true),
		failure: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		favItem: lipgloss.NewStyle().
			Foreground(p.secondary),
		favSelected: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		favAuthor: lipgloss.NewStyle().
			Foreground(p.dim),
		paneTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),
		tabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.tabActive).
			Padding(0, 1).
			Bold(true),
		tabInactive: lipgloss.NewStyle().
			Foreground(p.secondary).
			Background(p.tabBg).
			Padding(0, 1),
		tabSeparator: lipgloss.NewStyle().
			Foreground(p.dim).
			Background(p.surface),
		filterBar: lipgloss.NewStyle().
			Background(p.surface).
			PaddingLeft(1),
		statusBar: lipgloss.NewStyle().
			Background(p.statusBg).
			Foreground(p.statusFg).
			PaddingLeft(1).
			PaddingRight(1),
		toast: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		spinner: lipgloss.NewStyle().
			Foreground(p.accent),
		searchPrompt: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		pressed: lipgloss.NewStyle().
			Foreground(p.accent),
	}
	for _, c := range p.fade {
		s.fade = append(s.fade, lipgloss.NewStyle().Foreground(c).Bold(true))
	}
	return s
}
