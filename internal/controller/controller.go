// Package controller holds the quote page state and reacts to user input.
// It has no knowledge of the terminal: a front end posts events and renders
// whatever the controller reports through View.
package controller

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
	"github.com/norregaard/logos-maximus/internal/share"
)

const defaultDebounce = 250 * time.Millisecond

type QuoteFetcher interface {
	Fetch(ctx context.Context, opts quote.Options) (quote.Quote, error)
}

type Clipboard interface {
	WriteText(text string) error
}

type Sharer interface {
	Share(ctx context.Context, d share.Data) error
}

// Registrar installs the offline asset cache.
type Registrar interface {
	Register(ctx context.Context) error
}

type Config struct {
	Quotes    QuoteFetcher
	Prefs     *prefs.Prefs
	View      View
	Location  *History
	Clipboard Clipboard
	// Sharer is optional; without one, Share copies instead.
	Sharer Sharer
	// Assets is optional and registered in the background on start.
	Assets Registrar

	Categories []string
	ShareTitle string
	Debounce   time.Duration
	SystemDark func() bool
	Logger     *log.Logger
}

type Controller struct {
	quotes    QuoteFetcher
	prefs     *prefs.Prefs
	view      View
	loc       *History
	clipboard Clipboard
	sharer    Sharer
	assets    Registrar

	categories []string
	shareTitle string
	systemDark func() bool
	logger     *log.Logger

	events chan Event
	done   chan struct{}
	ctx    context.Context
	search *debouncer

	theme   prefs.Theme
	filter  prefs.Filter
	daily   bool
	current *quote.Quote

	seq         uint64
	cancelFetch context.CancelFunc
}

func New(cfg Config) *Controller {
	c := &Controller{
		quotes:     cfg.Quotes,
		prefs:      cfg.Prefs,
		view:       cfg.View,
		loc:        cfg.Location,
		clipboard:  cfg.Clipboard,
		sharer:     cfg.Sharer,
		assets:     cfg.Assets,
		categories: cfg.Categories,
		shareTitle: cfg.ShareTitle,
		systemDark: cfg.SystemDark,
		logger:     cfg.Logger,
		events:     make(chan Event, 64),
		done:       make(chan struct{}),
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.shareTitle == "" {
		c.shareTitle = "LogosMaximus"
	}
	wait := cfg.Debounce
	if wait <= 0 {
		wait = defaultDebounce
	}
	c.search = &debouncer{wait: wait, fire: func(gen uint64) { c.Post(searchSettled{gen: gen}) }}
	return c
}

// Post queues ev for the loop. It never blocks once Run has returned.
func (c *Controller) Post(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// Run initialises the page and processes events until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.ctx = ctx
	defer c.shutdown()

	c.start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-c.events:
			c.handle(ev)
		}
	}
}

func (c *Controller) shutdown() {
	c.search.Stop()
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	close(c.done)
}

func (c *Controller) start() {
	theme, err := c.prefs.Theme(c.systemDark)
	if err != nil {
		c.logger.Warn("reading theme", "err", err)
	}
	c.applyTheme(theme)

	c.restoreFilter()
	c.renderFavorites(c.favorites())

	opts := c.options()
	opts.ID = c.loc.Param("id")
	c.load(opts)

	if c.assets != nil {
		go func() {
			if err := c.assets.Register(c.ctx); err != nil {
				c.logger.Warn("offline cache unavailable", "err", err)
				return
			}
			c.logger.Debug("offline cache ready")
		}()
	}
}

func (c *Controller) handle(ev Event) {
	switch ev := ev.(type) {
	case Refresh:
		c.load(c.options())
	case SelectCategory:
		c.filter.Category = ev.Category
		c.filterChanged()
	case ToggleShort:
		c.filter.Short = !c.filter.Short
		c.filterChanged()
	case SearchInput:
		c.filter.Query = ev.Text
		c.search.Trigger()
	case searchSettled:
		if c.search.Current(ev.gen) {
			c.filterChanged()
		}
	case ToggleDaily:
		c.daily = !c.daily
		if err := c.prefs.SetDaily(c.daily); err != nil {
			c.logger.Warn("saving daily mode", "err", err)
		}
		c.view.SetFilter(c.filter, c.daily)
		c.load(c.options())
	case ToggleTheme:
		c.applyTheme(c.theme.Toggle())
	case ToggleFavorite:
		c.toggleFavorite()
	case Copy:
		c.copyCurrent()
	case Share:
		c.shareCurrent()
	case OpenFavorite:
		c.openFavorite(ev.ID)
	case KeyPress:
		c.handleKey(ev)
	case fetchDone:
		c.applyFetch(ev)
	}
}

func (c *Controller) handleKey(ev KeyPress) {
	if ev.InTextInput {
		return
	}
	switch strings.ToLower(ev.Key) {
	case " ", "space", "n":
		c.load(c.options())
	case "t":
		c.applyTheme(c.theme.Toggle())
	case "f":
		c.toggleFavorite()
	case "s":
		c.shareCurrent()
	case "c":
		c.copyCurrent()
	}
}

// options builds the query for a filtered fetch from the current controls.
func (c *Controller) options() quote.Options {
	opts := quote.Options{
		Category: c.filter.Category,
		Query:    c.filter.Query,
	}
	if c.filter.Short {
		opts.Length = quote.LengthShort
	}
	if c.daily {
		opts.Mode = quote.ModeDaily
	}
	return opts
}

func (c *Controller) filterChanged() {
	if err := c.prefs.SetFilter(c.filter); err != nil {
		c.logger.Warn("saving filter", "err", err)
	}
	c.view.SetFilter(c.filter, c.daily)
	c.load(c.options())
}

func (c *Controller) restoreFilter() {
	f, err := c.prefs.Filter()
	if err != nil {
		c.logger.Warn("reading filter", "err", err)
	}
	if f.Category != "" && !slices.Contains(c.categories, f.Category) {
		f.Category = ""
	}
	daily, err := c.prefs.Daily()
	if err != nil {
		c.logger.Warn("reading daily mode", "err", err)
	}
	c.filter = f
	c.daily = daily
	c.view.SetFilter(c.filter, c.daily)
}

func (c *Controller) applyTheme(t prefs.Theme) {
	c.theme = t
	if err := c.prefs.SetTheme(t); err != nil {
		c.logger.Warn("saving theme", "err", err)
	}
	c.view.SetTheme(t, t.Glyph())
}

// load starts a fetch, superseding any fetch still in flight.
func (c *Controller) load(opts quote.Options) {
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelFetch = cancel

	c.view.ShowLoading()
	go func() {
		q, err := c.quotes.Fetch(ctx, opts)
		c.Post(fetchDone{seq: seq, opts: opts, quote: q, err: err})
	}()
}

func (c *Controller) applyFetch(ev fetchDone) {
	if ev.seq != c.seq {
		c.logger.Debug("dropping stale quote", "seq", ev.seq, "latest", c.seq)
		return
	}
	c.cancelFetch()
	c.cancelFetch = nil

	if ev.err != nil {
		c.logger.Error("fetching quote", "err", ev.err, "query", ev.opts.Encode())
		c.current = nil
		c.view.ShowFailure(FailureText)
		c.view.SetFavorite(false)
		return
	}

	q := ev.quote
	c.current = &q
	c.view.ShowQuote(Present(q))
	c.view.SetFavorite(prefs.IsFavorite(c.favorites(), q.ID))

	if q.ID != "" && ev.opts.ID == "" {
		c.loc.ReplaceParam("id", q.ID)
		c.view.SetLocation(c.loc.String())
	}
}

func (c *Controller) favorites() []quote.Quote {
	list, err := c.prefs.Favorites()
	if err != nil {
		c.logger.Warn("reading favorites", "err", err)
	}
	return list
}

func (c *Controller) renderFavorites(list []quote.Quote) {
	c.view.ShowFavorites(list)
}

func (c *Controller) toggleFavorite() {
	if c.current == nil {
		return
	}
	list, added := prefs.ToggleFavorite(c.favorites(), *c.current)
	if err := c.prefs.SetFavorites(list); err != nil {
		c.logger.Warn("saving favorites", "err", err)
	}
	if added {
		c.view.Toast(ToastAdded)
	} else {
		c.view.Toast(ToastRemoved)
	}
	c.view.SetFavorite(added)
	c.renderFavorites(list)
}

func (c *Controller) copyCurrent() {
	if c.current == nil {
		return
	}
	if err := c.clipboard.WriteText(quote.ShareText(*c.current)); err != nil {
		c.logger.Warn("copying quote", "err", err)
		c.view.Toast(ToastCopyFailed)
		return
	}
	c.view.Toast(ToastCopied)
}

func (c *Controller) shareCurrent() {
	if c.current == nil {
		return
	}
	if c.sharer == nil {
		c.copyCurrent()
		return
	}
	err := c.sharer.Share(c.ctx, share.Data{
		Title: c.shareTitle,
		Text:  quote.ShareText(*c.current),
		URL:   c.loc.String(),
	})
	switch {
	case errors.Is(err, share.ErrUnsupported):
		c.copyCurrent()
	case err != nil:
		c.logger.Warn("sharing quote", "err", err)
		c.view.Toast(ToastShareFail)
	}
}

func (c *Controller) openFavorite(id string) {
	if id == "" {
		return
	}
	c.loc.PushParam("id", id)
	c.view.SetLocation(c.loc.String())
	c.load(quote.Options{ID: id})
	c.view.FocusMain()
}
