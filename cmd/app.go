package cmd

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/norregaard/logos-maximus/internal/clipboard"
	"github.com/norregaard/logos-maximus/internal/controller"
	"github.com/norregaard/logos-maximus/internal/logging"
	"github.com/norregaard/logos-maximus/internal/share"
	"github.com/norregaard/logos-maximus/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	cache, err := e.assets(nil)
	if err != nil {
		return err
	}
	client, err := e.quoteClient(cache)
	if err != nil {
		return err
	}
	loc, err := controller.NewHistory(deepLink(e.cfg.Endpoint, flagID))
	if err != nil {
		return err
	}

	cfg := controller.Config{
		Quotes:     client,
		Prefs:      e.prefs(),
		Location:   loc,
		Clipboard:  clipboard.System{},
		Categories: e.cfg.Categories,
		ShareTitle: e.cfg.ShareTitle(),
		Debounce:   e.cfg.DebounceDuration(),
		SystemDark: lipgloss.HasDarkBackground,
		Logger:     logging.Component(e.logger, "controller"),
	}
	if e.cfg.Share.URLTemplate != "" {
		cfg.Sharer = share.NewIntent(e.cfg.Share.URLTemplate)
	}
	if cache != nil {
		cfg.Assets = cache
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.logger.Info("starting", "version", version, "endpoint", e.cfg.Endpoint)
	return tui.Run(ctx, tui.RunOpts{Controller: cfg})
}

// deepLink is the page location for the endpoint, carrying id when set.
func deepLink(endpoint, id string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	if u.Path == "" {
		u.Path = "/"
	}
	if id != "" {
		q := u.Query()
		q.Set("id", id)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
