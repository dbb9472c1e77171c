package assetcache

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norregaard/logos-maximus/internal/store"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// switchable lets a test take the network away after install.
type switchable struct {
	offline atomic.Bool
	next    http.RoundTripper
}

var errOffline = errors.New("network unreachable")

func (s *switchable) RoundTrip(r *http.Request) (*http.Response, error) {
	if s.offline.Load() {
		return nil, errOffline
	}
	return s.next.RoundTrip(r)
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func originServer(t *testing.T, failPath string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == failPath {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Path {
		case "/static/style.css":
			w.Header().Set("Content-Type", "text/css")
			_, _ = w.Write([]byte("body{color:#333}"))
		default:
			_, _ = w.Write([]byte("asset " + r.URL.Path))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAssetsManifest(t *testing.T) {
	assets := Assets()
	assert.Len(t, assets, 5)
	assert.Contains(t, assets, "/static/style.css")

	assets[0] = "/mutated"
	assert.Equal(t, "/", Assets()[0], "Assets must return a copy")
}

func TestNewRejectsBadOrigin(t *testing.T) {
	_, err := New("file:///tmp", testStore(t))
	assert.Error(t, err)
}

func TestInstallStoresEveryAsset(t *testing.T) {
	srv := originServer(t, "")
	db := testStore(t)
	c, err := New(srv.URL, db)
	require.NoError(t, err)

	require.NoError(t, c.Install(context.Background()))

	paths, err := db.AssetPaths(context.Background(), CacheName)
	require.NoError(t, err)
	assert.ElementsMatch(t, Assets(), paths)
}

func TestInstallIsAllOrNothing(t *testing.T) {
	srv := originServer(t, "/static/favicon.svg")
	db := testStore(t)
	c, err := New(srv.URL, db)
	require.NoError(t, err)

	err = c.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/static/favicon.svg")

	names, err := db.AssetCacheNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestActivateDropsOtherStores(t *testing.T) {
	srv := originServer(t, "")
	db := testStore(t)
	ctx := context.Background()
	require.NoError(t, db.PutAssets(ctx, "logosmaximus-v0", []store.AssetEntry{{Path: "/", Status: 200, Body: []byte("old")}}))

	c, _ := New(srv.URL, db)
	require.NoError(t, c.Install(ctx))
	deleted, err := c.Activate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"logosmaximus-v0"}, deleted)

	names, _ := db.AssetCacheNames(ctx)
	assert.Equal(t, []string{CacheName}, names)
}

func TestServesCachedAssetOffline(t *testing.T) {
	srv := originServer(t, "")
	db := testStore(t)
	net := &switchable{next: http.DefaultTransport}
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	c, _ := New(srv.URL, db, WithNetwork(net), WithMetrics(m))
	require.NoError(t, c.Register(context.Background()))

	net.offline.Store(true)
	client := &http.Client{Transport: c}

	resp, err := client.Get(srv.URL + "/static/style.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "body{color:#333}", string(body))
	assert.Equal(t, "text/css", resp.Header.Get("Content-Type"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(resultHit)))
}

func TestUnlistedPathNotIntercepted(t *testing.T) {
	srv := originServer(t, "")
	db := testStore(t)
	net := &switchable{next: http.DefaultTransport}
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	c, _ := New(srv.URL, db, WithNetwork(net), WithMetrics(m))
	require.NoError(t, c.Register(context.Background()))

	client := &http.Client{Transport: c}

	// Online the request reaches the origin untouched.
	resp, err := client.Get(srv.URL + "/api/quote")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "asset /api/quote", string(body))

	// Offline it fails like any network request.
	net.offline.Store(true)
	_, err = client.Get(srv.URL + "/api/quote")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errOffline))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(resultPassthrough)))
}

func TestMissFallsBackToNetwork(t *testing.T) {
	srv := originServer(t, "")
	db := testStore(t)
	var calls int32
	net := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return http.DefaultTransport.RoundTrip(r)
	})

	// Nothing installed: listed path goes to the network.
	c, _ := New(srv.URL, db, WithNetwork(net))
	resp, err := (&http.Client{Transport: c}).Get(srv.URL + "/static/script.js")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, "asset /static/script.js", string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

type brokenStorage struct{ *store.Store }

func (brokenStorage) MatchAsset(context.Context, string, string) (store.AssetEntry, error) {
	return store.AssetEntry{}, errors.New("disk on fire")
}

func TestLookupErrorFallsBackToNetwork(t *testing.T) {
	srv := originServer(t, "")
	c, _ := New(srv.URL, brokenStorage{})

	resp, err := (&http.Client{Transport: c}).Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "asset /", string(body))
}

func TestOtherHostNotIntercepted(t *testing.T) {
	srv := originServer(t, "")
	c, _ := New("https://logosmaximus.app", testStore(t))
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/static/style.css", nil)
	assert.False(t, c.Intercepts(req.URL))
}
