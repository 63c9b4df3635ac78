// Package sqlite implements db.Store on an embedded SQLite database, for
// running the index without a Redis or Valkey server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kailas-cloud/wikisearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS set_members (
	key    TEXT NOT NULL,
	member TEXT NOT NULL,
	PRIMARY KEY (key, member)
);
CREATE TABLE IF NOT EXISTS hash_fields (
	key   TEXT NOT NULL,
	field TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (key, field)
);
`

// Store keeps sets and hashes in two tables keyed the same way Redis would.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path. The special path
// ":memory:" opens a private in-memory database.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		conn.SetMaxOpenConns(1)
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: conn, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Ping checks the database handle.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady pings once; an embedded database is ready as soon as it opens.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

// SAdd adds members to the set at key.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return s.inTx(ctx, db.OpSAdd, func(tx *sql.Tx) error {
		return insertMembers(ctx, tx, key, members)
	})
}

// SAddMulti adds members to several sets in one transaction.
func (s *Store) SAddMulti(ctx context.Context, items []db.SetAddItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.inTx(ctx, db.OpSAdd, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := insertMembers(ctx, tx, item.Key, item.Members); err != nil {
				return fmt.Errorf("key %s: %w", item.Key, err)
			}
		}
		return nil
	})
}

// SRem removes members from the set at key.
func (s *Store) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return s.inTx(ctx, db.OpSRem, func(tx *sql.Tx) error {
		for _, m := range members {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM set_members WHERE key = ? AND member = ?`, key, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// SMembers returns the members of the set at key. A missing key is an empty set.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT member FROM set_members WHERE key = ?`, key)
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, &db.Error{Op: db.OpSMembers, Err: err}
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// HSet sets hash fields, overwriting existing values.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return s.inTx(ctx, db.OpHSet, func(tx *sql.Tx) error {
		for f, v := range fields {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO hash_fields (key, field, value) VALUES (?, ?, ?)
				 ON CONFLICT (key, field) DO UPDATE SET value = excluded.value`,
				key, f, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// HGetAll returns all fields of a hash. A missing key is an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, value FROM hash_fields WHERE key = ?`, key)
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var f, v string
		if err := rows.Scan(&f, &v); err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Err: err}
		}
		out[f] = v
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return out, nil
}

// HGetMulti fetches one field per item.
func (s *Store) HGetMulti(ctx context.Context, items []db.HashGetItem) ([]db.HashGetResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	stmt, err := s.db.PrepareContext(ctx, `SELECT value FROM hash_fields WHERE key = ? AND field = ?`)
	if err != nil {
		return nil, &db.Error{Op: db.OpHGet, Err: err}
	}
	defer stmt.Close()

	out := make([]db.HashGetResult, len(items))
	for i, item := range items {
		var v string
		err := stmt.QueryRowContext(ctx, item.Key, item.Field).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, &db.Error{Op: db.OpHGet, Err: fmt.Errorf("key %s: %w", item.Key, err)}
		}
		out[i] = db.HashGetResult{Value: v, Found: true}
	}
	return out, nil
}

// Del deletes a key of either kind.
func (s *Store) Del(ctx context.Context, key string) error {
	return s.inTx(ctx, db.OpDel, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM set_members WHERE key = ?`, key); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM hash_fields WHERE key = ?`, key)
		return err
	})
}

// Exists checks if a key exists as a set or a hash.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM set_members WHERE key = ?) +
		        (SELECT COUNT(*) FROM hash_fields WHERE key = ?)`,
		key, key).Scan(&n)
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return n > 0, nil
}

func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: op, Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return &db.Error{Op: op, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: op, Err: err}
	}
	return nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, key string, members []string) error {
	for _, m := range members {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO set_members (key, member) VALUES (?, ?)`, key, m); err != nil {
			return err
		}
	}
	return nil
}
