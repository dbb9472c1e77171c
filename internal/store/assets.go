package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// AssetEntry is one cached response inside a named cache store.
type AssetEntry struct {
	Path     string
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

// ErrAssetNotFound is returned by MatchAsset when the store has no entry
// for the path.
var ErrAssetNotFound = errors.New("asset not cached")

// PutAssets replaces the content of the named cache store with entries in
// a single transaction.
func (s *Store) PutAssets(ctx context.Context, cacheName string, entries []AssetEntry) error {
	tx, err := s.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM asset_entries WHERE cache_name = ?", cacheName); err != nil {
		return fmt.Errorf("clearing cache %s: %w", cacheName, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO asset_entries (cache_name, path, status, header, body, stored_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, e := range entries {
		header, err := json.Marshal(e.Header)
		if err != nil {
			return fmt.Errorf("encoding headers for %s: %w", e.Path, err)
		}
		body := e.Body
		if body == nil {
			body = []byte{}
		}
		if _, err := stmt.ExecContext(ctx, cacheName, e.Path, e.Status, string(header), body, now); err != nil {
			return fmt.Errorf("storing asset %s: %w", e.Path, err)
		}
	}

	return tx.Commit()
}

// MatchAsset looks up path in the named cache store.
func (s *Store) MatchAsset(ctx context.Context, cacheName, path string) (AssetEntry, error) {
	var (
		e      AssetEntry
		header string
	)
	err := s.readDB.QueryRowContext(ctx, `
		SELECT path, status, header, body, stored_at FROM asset_entries
		WHERE cache_name = ? AND path = ?
	`, cacheName, path).Scan(&e.Path, &e.Status, &header, &e.Body, &e.StoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return AssetEntry{}, ErrAssetNotFound
	}
	if err != nil {
		return AssetEntry{}, fmt.Errorf("matching asset %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(header), &e.Header); err != nil {
		return AssetEntry{}, fmt.Errorf("decoding headers for %s: %w", path, err)
	}
	return e, nil
}

// AssetCacheNames lists the names of every non-empty cache store.
func (s *Store) AssetCacheNames(ctx context.Context) ([]string, error) {
	rows, err := s.readDB.QueryContext(ctx, "SELECT DISTINCT cache_name FROM asset_entries ORDER BY cache_name")
	if err != nil {
		return nil, fmt.Errorf("listing caches: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// AssetPaths lists the paths cached in the named store.
func (s *Store) AssetPaths(ctx context.Context, cacheName string) ([]string, error) {
	rows, err := s.readDB.QueryContext(ctx, "SELECT path FROM asset_entries WHERE cache_name = ? ORDER BY path", cacheName)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// DeleteAssetCache drops the named cache store. It reports whether any
// entry was removed.
func (s *Store) DeleteAssetCache(ctx context.Context, cacheName string) (bool, error) {
	res, err := s.writeDB.ExecContext(ctx, "DELETE FROM asset_entries WHERE cache_name = ?", cacheName)
	if err != nil {
		return false, fmt.Errorf("deleting cache %s: %w", cacheName, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
