// Package store provides a namespaced key-value blob store backed by SQLite,
// with staged writes and explicit commit semantics.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/sdnav/internal/debug"
)

// ErrNotFound indicates the key has no committed or staged value.
var ErrNotFound = errors.New("key not found")

// Store is a handle to one namespace of the blob store. Set stages writes in
// memory; nothing touches the database until Commit.
type Store struct {
	conn      *sql.DB
	namespace string
	staged    map[string][]byte
}

// Open opens (creating if needed) the store database at dbPath and returns a
// handle scoped to the given namespace.
func Open(dbPath, namespace string) (*Store, error) {
	if namespace == "" {
		return nil, fmt.Errorf("store: empty namespace")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Performance Tuning
	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS blobs (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		conn:      db,
		namespace: namespace,
		staged:    make(map[string][]byte),
	}, nil
}

// Get returns the value for key: a staged write if one is pending, otherwise
// the committed value. ErrNotFound when neither exists.
func (s *Store) Get(key string) ([]byte, error) {
	if v, ok := s.staged[key]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}

	var value []byte
	err := s.conn.QueryRow(
		"SELECT value FROM blobs WHERE namespace = ? AND key = ?",
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, s.namespace, key)
	}
	if err != nil {
		return nil, err
	}
	debug.Log(debug.STORE, "Get: %s/%s (%d bytes)", s.namespace, key, len(value))
	return value, nil
}

// Set stages a value for key. The value is copied; callers may reuse the
// buffer.
func (s *Store) Set(key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("store: empty key")
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.staged[key] = v
	return nil
}

// Commit writes all staged values in one transaction.
func (s *Store) Commit() error {
	if len(s.staged) == 0 {
		return nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	for key, value := range s.staged {
		_, err := tx.Exec(`
			INSERT INTO blobs (namespace, key, value) VALUES (?, ?, ?)
			ON CONFLICT (namespace, key) DO UPDATE SET
				value = excluded.value,
				updated_at = CURRENT_TIMESTAMP`,
			s.namespace, key, value,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	debug.Log(debug.STORE, "Commit: %s (%d keys)", s.namespace, len(s.staged))
	s.staged = make(map[string][]byte)
	return nil
}

// Delete removes key from the namespace, including any staged write.
func (s *Store) Delete(key string) error {
	delete(s.staged, key)
	_, err := s.conn.Exec(
		"DELETE FROM blobs WHERE namespace = ? AND key = ?",
		s.namespace, key,
	)
	return err
}

// Close discards staged writes and closes the database.
func (s *Store) Close() error {
	s.staged = nil
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
