package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/norregaard/logos-maximus/internal/assetcache"
	"github.com/norregaard/logos-maximus/internal/config"
	"github.com/norregaard/logos-maximus/internal/logging"
	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
	"github.com/norregaard/logos-maximus/internal/store"
)

// env is what every command needs: config, logger and local storage.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	logs   io.Closer
	dbPath string
	db     *store.Store // nil when storage could not be opened
	dbErr  error
}

func openEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagEndpoint != "" {
		u, err := url.Parse(flagEndpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid --endpoint %q", flagEndpoint)
		}
		cfg.Endpoint = flagEndpoint
	}

	logger, logs := logging.New(logging.Config{Level: cfg.Log.Level, Path: cfg.LogPath()})

	e := &env{cfg: cfg, logger: logger, logs: logs, dbPath: dataPath()}
	e.db, e.dbErr = store.Open(e.dbPath)
	if e.dbErr != nil {
		logger.Warn("local storage unavailable", "path", e.dbPath, "err", e.dbErr)
	}
	return e, nil
}

func dataPath() string {
	if flagData != "" {
		return flagData
	}
	return config.DataPath()
}

func (e *env) Close() error {
	var errs []error
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	errs = append(errs, e.logs.Close())
	return errors.Join(errs...)
}

// storage returns the database or the error that kept it from opening.
func (e *env) storage() (*store.Store, error) {
	if e.db == nil {
		return nil, fmt.Errorf("opening %s: %w", e.dbPath, e.dbErr)
	}
	return e.db, nil
}

// prefs falls back to in-memory preferences when storage is unavailable.
func (e *env) prefs() *prefs.Prefs {
	if e.db == nil {
		return prefs.New(prefs.NewMemory())
	}
	return prefs.New(e.db)
}

// assets builds the offline asset cache for the configured endpoint, or nil
// when it is disabled or there is nowhere to store it.
func (e *env) assets(reg prometheus.Registerer) (*assetcache.Cache, error) {
	if !e.cfg.Offline.Enabled || e.db == nil {
		return nil, nil
	}
	opts := []assetcache.Option{assetcache.WithLogger(logging.Component(e.logger, "assetcache"))}
	if reg != nil {
		opts = append(opts, assetcache.WithMetrics(assetcache.NewMetrics(reg)))
	}
	c, err := assetcache.New(e.cfg.Endpoint, e.db, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating asset cache: %w", err)
	}
	return c, nil
}

// quoteClient builds the endpoint client. Requests go through the asset
// cache when there is one, which passes quote requests to the network.
func (e *env) quoteClient(cache *assetcache.Cache) (*quote.Client, error) {
	hc := &http.Client{Timeout: e.cfg.RequestTimeoutDuration()}
	if cache != nil {
		hc.Transport = cache
	}
	return quote.NewClient(e.cfg.Endpoint,
		quote.WithHTTPClient(hc),
		quote.WithBreaker(e.cfg.Breaker.MaxFailures, e.cfg.BreakerTimeout()),
		quote.WithLogger(logging.Component(e.logger, "quote")),
	)
}
