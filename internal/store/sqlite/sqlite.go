// Package sqlite implements store.Backend on a single SQLite table of JSON
// leaves keyed by path. It uses the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store"
)

const schema = `CREATE TABLE IF NOT EXISTS nodes (
	path  TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is a SQLite backend.
type Store struct {
	db   *sql.DB
	path string
}

var _ store.Backend = (*Store)(nil)

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewConfigError("sqlite", "database path is required", nil)
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapStore("open", cleanPath, err)
	}
	// one writer at a time; sqlite serializes writes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapStore("migrate", cleanPath, err)
	}
	return &Store{db: db, path: cleanPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get implements store.Backend.
func (s *Store) Get(ctx context.Context, path string) (any, error) {
	path = store.Join(path)
	lo, hi := subtreeRange(path)

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, value FROM nodes WHERE path = ? OR (path >= ? AND path < ?)`, path, lo, hi)
	if err != nil {
		return nil, errors.WrapStore("read", path, err)
	}
	defer rows.Close()

	leaves := make(map[string]any)
	for rows.Next() {
		var p, raw string
		if err := rows.Scan(&p, &raw); err != nil {
			return nil, errors.WrapStore("read", path, err)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, errors.WrapStore("read", p, err)
		}
		leaves[p] = v
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStore("read", path, err)
	}
	return store.Unflatten(path, leaves), nil
}

// Set implements store.Backend.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	path = store.Join(path)
	return s.tx(ctx, "set", path, func(tx *sql.Tx) error {
		return replace(ctx, tx, path, value)
	})
}

// Update implements store.Backend.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	path = store.Join(path)
	return s.tx(ctx, "update", path, func(tx *sql.Tx) error {
		for k, v := range fields {
			if err := replace(ctx, tx, store.Join(path, k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Remove implements store.Backend.
func (s *Store) Remove(ctx context.Context, path string) error {
	path = store.Join(path)
	return s.tx(ctx, "remove", path, func(tx *sql.Tx) error {
		return deleteSubtree(ctx, tx, path)
	})
}

// Identity implements store.Backend.
func (s *Store) Identity(ctx context.Context) (string, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return "", errors.NewAuthenticationError("sqlite", "database unavailable", err)
	}
	return "sqlite:" + s.path, nil
}

func (s *Store) tx(ctx context.Context, op, path string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapStore(op, path, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return errors.WrapStore(op, path, err)
	}
	return errors.WrapStore(op, path, tx.Commit())
}

// replace writes value as the whole subtree at path. Leaves stored at
// ancestors of path are dropped since a node cannot be both.
func replace(ctx context.Context, tx *sql.Tx, path string, value any) error {
	v, err := store.Normalize(value)
	if err != nil {
		return err
	}
	if err := deleteSubtree(ctx, tx, path); err != nil {
		return err
	}

	leaves := store.Flatten(path, v)
	if len(leaves) == 0 {
		return nil
	}
	for _, a := range store.Ancestors(path) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE path = ?`, a); err != nil {
			return err
		}
	}
	for p, leaf := range leaves {
		raw, err := json.Marshal(leaf)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO nodes (path, value) VALUES (?, ?)`, p, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

func deleteSubtree(ctx context.Context, tx *sql.Tx, path string) error {
	lo, hi := subtreeRange(path)
	_, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE path = ? OR (path >= ? AND path < ?)`, path, lo, hi)
	return err
}

// subtreeRange returns the half-open key range [path/, path0) holding every
// descendant of path; '0' sorts right after '/'. The root covers everything.
func subtreeRange(path string) (string, string) {
	if path == "" {
		return "", "\U0010FFFF"
	}
	return path + "/", path + "0"
}
