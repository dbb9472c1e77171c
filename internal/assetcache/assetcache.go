// Package assetcache keeps a fixed set of the web client's static assets
// available offline. It installs them into a named cache store and serves
// them from there through an http.RoundTripper, passing every other request
// through to the network.
package assetcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/norregaard/logos-maximus/internal/store"
)

// CacheName identifies the current cache store. Bump it whenever the
// manifest or the assets change so Activate drops the old store.
const CacheName = "logosmaximus-v1"

var manifest = []string{
	"/",
	"/static/style.css",
	"/static/script.js",
	"/static/manifest.webmanifest",
	"/static/favicon.svg",
}

const maxAssetSize = 8 << 20

// Assets returns the manifest paths.
func Assets() []string {
	return slices.Clone(manifest)
}

// Storage holds named cache stores.
type Storage interface {
	PutAssets(ctx context.Context, cacheName string, entries []store.AssetEntry) error
	MatchAsset(ctx context.Context, cacheName, path string) (store.AssetEntry, error)
	AssetCacheNames(ctx context.Context) ([]string, error)
	DeleteAssetCache(ctx context.Context, cacheName string) (bool, error)
}

type Cache struct {
	origin  *url.URL
	storage Storage
	network http.RoundTripper
	logger  *log.Logger
	metrics *Metrics
}

type Option func(*Cache)

// WithNetwork sets the transport used for installs and cache misses.
func WithNetwork(rt http.RoundTripper) Option {
	return func(c *Cache) { c.network = rt }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// New builds a cache for the assets served by origin.
func New(origin string, storage Storage, opts ...Option) (*Cache, error) {
	u, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("origin scheme must be http or https, got %q", u.Scheme)
	}
	c := &Cache{
		origin:  u,
		storage: storage,
		network: http.DefaultTransport,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Register installs the manifest and then activates the current store.
func (c *Cache) Register(ctx context.Context) error {
	if err := c.Install(ctx); err != nil {
		return err
	}
	_, err := c.Activate(ctx)
	return err
}

// Install fetches every manifest asset from the network and stores them in
// the current cache store. If any fetch fails nothing is stored.
func (c *Cache) Install(ctx context.Context) error {
	entries := make([]store.AssetEntry, 0, len(manifest))
	for _, p := range manifest {
		e, err := c.fetchAsset(ctx, p)
		if err != nil {
			return fmt.Errorf("installing %s: %w", CacheName, err)
		}
		entries = append(entries, e)
	}
	if err := c.storage.PutAssets(ctx, CacheName, entries); err != nil {
		return fmt.Errorf("installing %s: %w", CacheName, err)
	}
	c.logger.Info("asset cache installed", "cache", CacheName, "assets", len(entries))
	return nil
}

// Activate deletes every cache store other than the current one and
// returns the names it removed.
func (c *Cache) Activate(ctx context.Context) ([]string, error) {
	names, err := c.storage.AssetCacheNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("activating %s: %w", CacheName, err)
	}
	var deleted []string
	for _, n := range names {
		if n == CacheName {
			continue
		}
		if _, err := c.storage.DeleteAssetCache(ctx, n); err != nil {
			return deleted, fmt.Errorf("activating %s: %w", CacheName, err)
		}
		c.logger.Info("dropped stale asset cache", "cache", n)
		deleted = append(deleted, n)
	}
	return deleted, nil
}

// Intercepts reports whether a request for u is answered from the cache
// store when possible.
func (c *Cache) Intercepts(u *url.URL) bool {
	return u.Host == c.origin.Host && slices.Contains(manifest, u.Path)
}

// RoundTrip answers manifest requests from the cache store, falling back to
// the network on a miss or lookup error. Other requests go straight to the
// network.
func (c *Cache) RoundTrip(req *http.Request) (*http.Response, error) {
	if !c.Intercepts(req.URL) {
		c.metrics.observe(resultPassthrough)
		return c.network.RoundTrip(req)
	}
	if req.Method == http.MethodGet {
		e, err := c.storage.MatchAsset(req.Context(), CacheName, req.URL.Path)
		switch {
		case err == nil:
			c.metrics.observe(resultHit)
			return entryResponse(req, e), nil
		case !errors.Is(err, store.ErrAssetNotFound):
			c.logger.Warn("asset cache lookup failed", "path", req.URL.Path, "err", err)
		}
	}
	c.metrics.observe(resultMiss)
	return c.network.RoundTrip(req)
}

func (c *Cache) fetchAsset(ctx context.Context, path string) (store.AssetEntry, error) {
	u := *c.origin
	u.Path = path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return store.AssetEntry{}, err
	}
	resp, err := c.network.RoundTrip(req)
	if err != nil {
		return store.AssetEntry{}, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return store.AssetEntry{}, fmt.Errorf("fetching %s: status %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return store.AssetEntry{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return store.AssetEntry{
		Path:   path,
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

func entryResponse(req *http.Request, e store.AssetEntry) *http.Response {
	header := e.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Del("Content-Length")
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}
