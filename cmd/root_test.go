package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/norregaard/logos-maximus/internal/assetcache"
	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
	"github.com/norregaard/logos-maximus/internal/store"
)

func openTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "logos.db")
	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, dbPath
}

func TestDeepLink(t *testing.T) {
	tests := []struct {
		endpoint string
		id       string
		want     string
	}{
		{"https://logosmaximus.app", "", "https://logosmaximus.app/"},
		{"https://logosmaximus.app", "42", "https://logosmaximus.app/?id=42"},
		{"http://localhost:8080/", "a b", "http://localhost:8080/?id=a+b"},
	}
	for _, tt := range tests {
		got := deepLink(tt.endpoint, tt.id)
		if got != tt.want {
			t.Errorf("deepLink(%q, %q) = %q, want %q", tt.endpoint, tt.id, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRemoveAndExportFavorites(t *testing.T) {
	db, _ := openTestStore(t)
	p := prefs.New(db)
	favs := []quote.Quote{
		{ID: "1", Text: "Know thyself", Author: "Socrates"},
		{ID: "2", Text: "Nothing in excess"},
	}
	if err := p.SetFavorites(favs); err != nil {
		t.Fatalf("SetFavorites: %v", err)
	}

	removed, err := removeFavorite(p, "1")
	if err != nil || !removed {
		t.Fatalf("removeFavorite(1) = %v, %v", removed, err)
	}
	removed, err = removeFavorite(p, "missing")
	if err != nil || removed {
		t.Fatalf("removeFavorite(missing) = %v, %v", removed, err)
	}

	list, err := p.Favorites()
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	var buf bytes.Buffer
	if err := exportFavorites(&buf, list); err != nil {
		t.Fatalf("exportFavorites: %v", err)
	}
	var got []quote.Quote
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("exported JSON invalid: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("exported %+v, want only favorite 2", got)
	}
}

func TestExportEmptyFavoritesIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := exportFavorites(&buf, nil); err != nil {
		t.Fatalf("exportFavorites: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("got %q, want []", buf.String())
	}
}

func TestPrintState(t *testing.T) {
	db, dbPath := openTestStore(t)
	p := prefs.New(db)
	if err := p.SetTheme(prefs.ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := p.SetFilter(prefs.Filter{Category: "Stoicism", Short: true, Query: "virtue"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := printState(&buf, db, dbPath); err != nil {
		t.Fatalf("printState: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Theme: dark",
		`Filter: category=Stoicism short=true q="virtue"`,
		"Daily: false",
		"Favorites: 0",
		"  filter.category\n",
		"  theme\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("state output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintQuotes(t *testing.T) {
	var buf bytes.Buffer
	printQuotes(&buf, []quote.Quote{{ID: "7", Text: "Be.", Author: "Zeno", Category: "Stoicism"}})
	if got := buf.String(); !strings.Contains(got, "Be. — Zeno [Stoicism]") {
		t.Errorf("printQuotes = %q", got)
	}
}

func TestReportList(t *testing.T) {
	tests := []struct {
		name    string
		res     quote.ListResult
		err     error
		want    string
		wantErr string
	}{
		{
			name: "matches",
			res:  quote.ListResult{Count: 1, Items: []quote.Quote{{ID: "7", Text: "Be.", Author: "Zeno"}}},
			want: "1 match(es)",
		},
		{name: "empty listing", res: quote.ListResult{}, want: "No quotes matched."},
		{name: "not found", err: &quote.StatusError{StatusCode: http.StatusNotFound}, want: "No quotes matched."},
		{
			name:    "rate limited",
			err:     fmt.Errorf("wrapped: %w", &quote.StatusError{StatusCode: http.StatusTooManyRequests}),
			wantErr: "rate limiting",
		},
		{name: "server error", err: &quote.StatusError{StatusCode: http.StatusInternalServerError}, wantErr: "listing quotes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := reportList(&buf, tt.res, tt.err)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("reportList error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("reportList: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestClearKeys(t *testing.T) {
	db, _ := openTestStore(t)
	p := prefs.New(db)
	if err := p.SetTheme(prefs.ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := p.SetDaily(true); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := clearKeys(&buf, db, []string{prefs.KeyTheme, "missing"}); err != nil {
		t.Fatalf("clearKeys: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Cleared theme.") || !strings.Contains(out, "missing: not set") {
		t.Errorf("unexpected output %q", out)
	}

	keys, err := db.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != prefs.KeyDailyMode {
		t.Errorf("keys after clear = %v, want only %s", keys, prefs.KeyDailyMode)
	}
	theme, err := p.Theme(func() bool { return false })
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != prefs.ThemeLight {
		t.Errorf("theme after clear = %s, want fallback light", theme)
	}
}

func TestMirrorServesAssetsOffline(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "asset "+r.URL.Path)
	}))

	db, _ := openTestStore(t)
	reg := prometheus.NewRegistry()
	cache, err := assetcache.New(upstream.URL, db, assetcache.WithMetrics(assetcache.NewMetrics(reg)))
	if err != nil {
		t.Fatalf("assetcache.New: %v", err)
	}
	if err := cache.Register(context.Background()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	upstream.Close()

	target, _ := url.Parse(upstream.URL)
	mirror := httptest.NewServer(newMirror(target, cache, reg, log.New(io.Discard)))
	defer mirror.Close()

	resp, err := http.Get(mirror.URL + "/static/style.css")
	if err != nil {
		t.Fatalf("GET asset: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "asset /static/style.css" {
		t.Errorf("asset = %d %q, want cached body", resp.StatusCode, body)
	}

	resp, err = http.Get(mirror.URL + "/api/quote")
	if err != nil {
		t.Fatalf("GET quote: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("unlisted path status = %d, want 502 while offline", resp.StatusCode)
	}

	resp, err = http.Get(mirror.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `logos_asset_cache_requests_total{result="hit"} 1`) {
		t.Errorf("metrics missing hit counter:\n%s", body)
	}
}

func TestPrintOfflineStatus(t *testing.T) {
	db, _ := openTestStore(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := printOfflineStatus(ctx, &buf, db); err != nil {
		t.Fatalf("printOfflineStatus: %v", err)
	}
	if !strings.Contains(buf.String(), assetcache.CacheName+": not installed") {
		t.Errorf("expected not installed, got %q", buf.String())
	}

	err := db.PutAssets(ctx, "logosmaximus-v0", []store.AssetEntry{{Path: "/", Status: 200, Body: []byte("old")}})
	if err != nil {
		t.Fatalf("PutAssets: %v", err)
	}
	buf.Reset()
	if err := printOfflineStatus(ctx, &buf, db); err != nil {
		t.Fatalf("printOfflineStatus: %v", err)
	}
	if !strings.Contains(buf.String(), "logosmaximus-v0 (stale): 1 assets") {
		t.Errorf("expected stale store listed, got %q", buf.String())
	}
}
