package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/norregaard/logos-maximus/internal/assetcache"
	"github.com/norregaard/logos-maximus/internal/logging"
	"github.com/norregaard/logos-maximus/internal/store"
)

var flagListen string

var errOfflineDisabled = errors.New("offline cache is disabled or local storage is unavailable")

var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Manage the offline asset cache",
}

var offlineInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download the app assets and activate the current cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		cache, err := e.assets(nil)
		if err != nil {
			return err
		}
		if cache == nil {
			return errOfflineDisabled
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.RequestTimeoutDuration())
		defer cancel()
		if err := cache.Install(ctx); err != nil {
			return err
		}
		deleted, err := cache.Activate(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Installed %d assets into %s.\n", len(assetcache.Assets()), assetcache.CacheName)
		for _, name := range deleted {
			fmt.Fprintf(out, "Deleted old cache %s.\n", name)
		}
		return nil
	},
}

var offlineStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List cache stores and their assets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		db, err := e.storage()
		if err != nil {
			return err
		}
		return printOfflineStatus(cmd.Context(), cmd.OutOrStdout(), db)
	},
}

var offlineServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the endpoint through the offline cache",
	Long: `Run a local mirror of the endpoint. Requests for the app assets are
answered from the offline cache when possible; everything else goes to the
network. Prometheus metrics are exposed on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())

		cache, err := e.assets(reg)
		if err != nil {
			return err
		}
		target, err := url.Parse(e.cfg.Endpoint)
		if err != nil {
			return fmt.Errorf("parsing endpoint: %w", err)
		}

		var transport http.RoundTripper = http.DefaultTransport
		if cache != nil {
			transport = cache
		}

		listen := e.cfg.Offline.Listen
		if flagListen != "" {
			listen = flagListen
		}

		logger := logging.Component(e.logger, "mirror")
		srv := &http.Server{
			Addr:              listen,
			Handler:           newMirror(target, transport, reg, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cache != nil {
			go func() {
				if err := cache.Register(ctx); err != nil {
					logger.Warn("offline cache not installed", "err", err)
				}
			}()
		}

		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", e.cfg.Endpoint, listen)

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	offlineServeCmd.Flags().StringVar(&flagListen, "listen", "", "address to listen on (default from config)")
	offlineCmd.AddCommand(offlineInstallCmd, offlineStatusCmd, offlineServeCmd)
}

// newMirror proxies every request to target through transport and serves
// metrics from reg.
func newMirror(target *url.URL, transport http.RoundTripper, reg *prometheus.Registry, logger *log.Logger) http.Handler {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("upstream request failed", "path", r.URL.Path, "err", err)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Handle("/*", proxy)
	return r
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func printOfflineStatus(ctx context.Context, w io.Writer, db *store.Store) error {
	names, err := db.AssetCacheNames(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(names, assetcache.CacheName) {
		fmt.Fprintf(w, "%s: not installed\n", assetcache.CacheName)
	}
	for _, name := range names {
		paths, err := db.AssetPaths(ctx, name)
		if err != nil {
			return err
		}
		label := name
		if name == assetcache.CacheName {
			label += " (current)"
		} else {
			label += " (stale)"
		}
		fmt.Fprintf(w, "%s: %d assets\n", label, len(paths))
		for _, p := range paths {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	return nil
}
