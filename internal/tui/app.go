package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/norregaard/logos-maximus/internal/controller"
	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
)

const (
	toastTTL     = 2 * time.Second
	fadeInterval = 60 * time.Millisecond
)

type focusPane int

const (
	focusQuote focusPane = iota
	focusFavorites
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeHelp
)

type App struct {
	ctrl  Poster
	keys  keyMap
	st    styles
	theme prefs.Theme
	glyph string
	mode  mode
	focus focusPane

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	help        help.Model
	filterBar   filterBar

	// State
	quote     quotePane
	favorite  bool
	favorites []quote.Quote
	favCursor int
	location  string
	toast     string
	toastID   int
}

// RunOpts holds all parameters for launching the TUI. The controller's
// View is supplied by Run.
type RunOpts struct {
	Controller controller.Config
}

func NewApp(ctrl Poster, categories []string) *App {
	st := newStyles(prefs.ThemeLight)

	ti := textinput.New()
	ti.Placeholder = "Search quotes..."
	ti.Prompt = st.searchPrompt.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = st.spinner

	return &App{
		ctrl:        ctrl,
		keys:        newKeyMap(),
		st:          st,
		theme:       prefs.ThemeLight,
		glyph:       prefs.ThemeLight.Glyph(),
		searchInput: ti,
		spinner:     sp,
		help:        help.New(),
		filterBar:   newFilterBar(categories),
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case themeMsg:
		a.theme = msg.theme
		a.glyph = msg.glyph
		a.st = newStyles(msg.theme)
		a.spinner.Style = a.st.spinner
		a.searchInput.Prompt = a.st.searchPrompt.Render("/ ")
		return a, nil

	case filterMsg:
		a.filterBar.selected = msg.filter.Category
		a.filterBar.short = msg.filter.Short
		a.filterBar.daily = msg.daily
		if a.mode != modeSearch {
			a.searchInput.SetValue(msg.filter.Query)
		}
		return a, nil

	case loadingMsg:
		a.quote = quotePane{loading: true}
		return a, a.spinner.Tick

	case quoteMsg:
		q := msg.quote
		a.quote = quotePane{quote: &q}
		return a, fadeTick()

	case fadeTickMsg:
		if a.quote.quote != nil && a.quote.fade < len(a.st.fade)-1 {
			a.quote.fade++
			return a, fadeTick()
		}
		return a, nil

	case failureMsg:
		a.quote = quotePane{failure: msg.text}
		return a, nil

	case favoriteMsg:
		a.favorite = msg.pressed
		return a, nil

	case favoritesMsg:
		a.favorites = msg.list
		if a.favCursor >= len(a.favorites) {
			a.favCursor = max(0, len(a.favorites)-1)
		}
		return a, nil

	case locationMsg:
		a.location = msg.url
		return a, nil

	case toastMsg:
		a.toastID++
		a.toast = msg.text
		id := a.toastID
		return a, tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.toast = ""
		}
		return a, nil

	case focusMainMsg:
		a.focus = focusQuote
		return a, nil

	case spinner.TickMsg:
		if a.quote.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func fadeTick() tea.Cmd {
	return tea.Tick(fadeInterval, func(time.Time) tea.Msg { return fadeTickMsg{} })
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeHelp:
		if key.Matches(msg, a.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
			a.help.ShowAll = false
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp
		a.help.ShowAll = true
		return a, nil
	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case key.Matches(msg, a.keys.Focus):
		if a.focus == focusQuote && len(a.favorites) > 0 {
			a.focus = focusFavorites
		} else {
			a.focus = focusQuote
		}
		return a, nil
	case a.focus == focusFavorites && key.Matches(msg, a.keys.Down):
		if a.favCursor < len(a.favorites)-1 {
			a.favCursor++
		}
		return a, nil
	case a.focus == focusFavorites && key.Matches(msg, a.keys.Up):
		if a.favCursor > 0 {
			a.favCursor--
		}
		return a, nil
	case a.focus == focusFavorites && key.Matches(msg, a.keys.Open):
		if a.favCursor < len(a.favorites) {
			a.ctrl.Post(controller.OpenFavorite{ID: a.favorites[a.favCursor].ID})
		}
		return a, nil
	case key.Matches(msg, a.keys.Category):
		if cat, ok := a.filterBar.categoryAt(int(msg.String()[0] - '0')); ok {
			a.ctrl.Post(controller.SelectCategory{Category: cat})
		}
		return a, nil
	case key.Matches(msg, a.keys.PrevCat):
		a.ctrl.Post(controller.SelectCategory{Category: a.filterBar.cycle(-1)})
		return a, nil
	case key.Matches(msg, a.keys.NextCat):
		a.ctrl.Post(controller.SelectCategory{Category: a.filterBar.cycle(1)})
		return a, nil
	case key.Matches(msg, a.keys.Short):
		a.ctrl.Post(controller.ToggleShort{})
		return a, nil
	case key.Matches(msg, a.keys.Daily):
		a.ctrl.Post(controller.ToggleDaily{})
		return a, nil
	}

	// Everything else is a potential page shortcut.
	a.ctrl.Post(controller.KeyPress{Key: msg.String()})
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.EndSearch) {
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	prev := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.ctrl.Post(controller.KeyPress{Key: msg.String(), InTextInput: true})
	// Only re-query on actual value changes, not cursor moves etc.
	if v := a.searchInput.Value(); v != prev {
		a.ctrl.Post(controller.SearchInput{Text: v})
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return a.st.header.Render("LogosMaximus")
	}

	if a.mode == modeHelp {
		card := a.st.pane.Padding(1, 2).Render(
			a.st.paneTitle.Render("LogosMaximus") + a.st.headerDim.Render(" · keyboard shortcuts") + "\n\n" +
				a.help.View(a.keys),
		)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
	}

	// Layout calculations
	contentHeight := a.height - 4 - 2 // header, filter, search, status + borders
	if contentHeight < 3 {
		contentHeight = 3
	}
	favWidth := int(float64(a.width) * 0.35)
	quoteWidth := a.width - favWidth - 1 // gap

	// Header
	headerLeft := a.st.header.Render("LogosMaximus") + " " + a.glyph
	headerRight := a.st.headerDim.Render(truncateStr(a.location, max(0, a.width/2)))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	filter := a.filterBar.render(&a.st, a.width)
	search := a.searchInput.View()

	// Quote pane
	star := "☆"
	if a.favorite {
		star = a.st.pressed.Render("★")
	}
	quoteContent := star + "\n" + renderQuote(&a.st, a.quote, a.spinner.View(), quoteWidth-4, contentHeight-1)
	quoteStyle := a.st.pane
	if a.focus == focusQuote {
		quoteStyle = a.st.paneActive
	}
	qPane := quoteStyle.Width(quoteWidth - 2).Height(contentHeight).Render(quoteContent)

	// Favorites pane
	favContent := renderFavorites(&a.st, a.favorites, a.favCursor, a.focus == focusFavorites, contentHeight, favWidth-4)
	favStyle := a.st.pane
	if a.focus == focusFavorites {
		favStyle = a.st.paneActive
	}
	favPane := favStyle.Width(favWidth - 2).Height(contentHeight).Render(favContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, qPane, favPane)

	hints := a.help.ShortHelpView(a.keys.ShortHelp())
	if a.mode == modeSearch {
		hints = a.help.ShortHelpView([]key.Binding{a.keys.EndSearch})
	}
	status := renderStatusBar(&a.st, a.toast, a.filterBar.activeLabel(), len(a.favorites), hints, a.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, search, content, status)
}

// Run starts the controller and the TUI program, and returns when the user
// quits.
func Run(ctx context.Context, opts RunOpts) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := &bridge{}
	cfg := opts.Controller
	cfg.View = b
	ctrl := controller.New(cfg)

	out := newOutbox()
	app := NewApp(out, cfg.Categories)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	b.send = p.Send

	go out.run(ctx, ctrl)
	errc := make(chan error, 1)
	go func() { errc <- ctrl.Run(ctx) }()

	_, err := p.Run()
	cancel()
	if cerr := <-errc; err == nil {
		err = cerr
	}
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
