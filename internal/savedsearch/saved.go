package savedsearch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/search"
)

// ErrNotFound is returned when no saved search has the requested hash.
var ErrNotFound = errors.New("saved search not found")

// SavedSearch is one registry entry.
type SavedSearch struct {
	ID    string `json:"id"`
	Hash  uint32 `json:"hash"`
	Name  string `json:"name"`
	Query string `json:"query"`
	Seq   int64  `json:"seq"`
}

// Save stores q under name, keyed by q.Hash. An empty name defaults to the
// canonical query string.
//
// Saving a query whose hash is already registered leaves the existing entry
// untouched and returns it with created=false.
func (r *Registry) Save(ctx context.Context, name string, q *queryir.SearchQueryJSON) (saved SavedSearch, created bool, err error) {
	if q == nil {
		return SavedSearch{}, false, errors.New("save search: nil query")
	}
	query := search.BuildSearchQueryString(q)
	if name == "" {
		name = query
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return SavedSearch{}, false, fmt.Errorf("save search: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := getByHash(ctx, tx, q.Hash)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return SavedSearch{}, false, fmt.Errorf("save search: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(created_seq), 0) + 1 FROM saved_searches`).Scan(&seq); err != nil {
		return SavedSearch{}, false, fmt.Errorf("save search: next seq: %w", err)
	}

	// ON CONFLICT covers a concurrent writer on another connection.
	res, err := tx.ExecContext(ctx, `
		INSERT INTO saved_searches (id, hash, name, query, created_seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, r.ids.Generate(), int64(q.Hash), name, query, seq)
	if err != nil {
		return SavedSearch{}, false, fmt.Errorf("save search: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return SavedSearch{}, false, fmt.Errorf("save search: rows affected: %w", err)
	}

	saved, err = getByHash(ctx, tx, q.Hash)
	if err != nil {
		return SavedSearch{}, false, fmt.Errorf("save search: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SavedSearch{}, false, fmt.Errorf("save search: commit: %w", err)
	}
	return saved, affected > 0, nil
}

// Get returns the saved search with the given hash, or ErrNotFound.
func (r *Registry) Get(ctx context.Context, hash uint32) (SavedSearch, error) {
	saved, err := getByHash(ctx, r.db, hash)
	if err != nil {
		return SavedSearch{}, fmt.Errorf("get search: %w", err)
	}
	return saved, nil
}

// List returns every saved search in creation order.
// Returns an empty slice (not nil) when the registry is empty.
func (r *Registry) List(ctx context.Context) ([]SavedSearch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hash, name, query, created_seq
		FROM saved_searches
		ORDER BY created_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	saved := []SavedSearch{}
	for rows.Next() {
		s, err := scanSavedSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("list searches: %w", err)
		}
		saved = append(saved, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list searches: iterate: %w", err)
	}
	return saved, nil
}

// Delete removes the saved search with the given hash, or returns ErrNotFound.
func (r *Registry) Delete(ctx context.Context, hash uint32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE hash = ?`, int64(hash))
	if err != nil {
		return fmt.Errorf("delete search: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete search: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete search %d: %w", hash, ErrNotFound)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getByHash(ctx context.Context, q queryer, hash uint32) (SavedSearch, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, hash, name, query, created_seq
		FROM saved_searches
		WHERE hash = ?
	`, int64(hash))
	saved, err := scanSavedSearch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedSearch{}, ErrNotFound
	}
	return saved, err
}

func scanSavedSearch(s scanner) (SavedSearch, error) {
	var (
		saved SavedSearch
		hash  int64
	)
	if err := s.Scan(&saved.ID, &hash, &saved.Name, &saved.Query, &saved.Seq); err != nil {
		return SavedSearch{}, err
	}
	saved.Hash = uint32(hash)
	return saved, nil
}
