// Package cache stores raw lookup responses in a local sqlite database so
// repeated adds of the same DOI, ISBN or RFC do not go back to the network.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matsen/seb/internal/api"
	"github.com/matsen/seb/internal/seb"
)

const schema = `
CREATE TABLE IF NOT EXISTS lookups (
    url        TEXT PRIMARY KEY,
    body       TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);
`

// Store is a sqlite-backed map from request URL to response body.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, seb.WrapWith(seb.KindIO, err, fmt.Sprintf("unable to open cache at %s", path))
	}

	// modernc.org/sqlite serializes writers; a single connection avoids
	// SQLITE_BUSY on concurrent statements.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, seb.WrapWith(seb.KindIO, err, "unable to create cache schema")
	}

	return &Store{db: db}, nil
}

// Get returns the cached body for the URL, if any.
func (s *Store) Get(url string) (string, bool, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM lookups WHERE url = ?`, url).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, seb.WrapWith(seb.KindIO, err, "unable to read from cache")
	}
	return body, true, nil
}

// Put stores the body for the URL, replacing any previous response.
func (s *Store) Put(url, body string) error {
	_, err := s.db.Exec(
		`INSERT INTO lookups (url, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return seb.WrapWith(seb.KindIO, err, "unable to write to cache")
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Client decorates an api.Client with the store. Text lookups are cached by
// URL; JSON lookups pass through because the search queries they serve are
// interactive and rarely repeat.
type Client struct {
	inner api.Client
	store *Store
}

// NewClient wraps an api.Client with the store.
func NewClient(inner api.Client, store *Store) *Client {
	return &Client{inner: inner, store: store}
}

// GetText serves the URL from the store when possible, otherwise fetches and
// stores the response. A cache write failure does not fail the lookup.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	if body, ok, err := c.store.Get(url); err == nil && ok {
		return body, nil
	}

	body, err := c.inner.GetText(ctx, url)
	if err != nil {
		return "", err
	}

	_ = c.store.Put(url, body)
	return body, nil
}

// GetJSON passes through to the inner client.
func (c *Client) GetJSON(ctx context.Context, url string, into any) error {
	return c.inner.GetJSON(ctx, url, into)
}
