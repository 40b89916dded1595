package theme

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // sqlite driver
)

// ErrNotFound is returned by a Store when the key is missing but the store itself is reachable.
var ErrNotFound = errors.New("key not found")

// Store is the key/value storage a preference is persisted in.
// Any Get error other than ErrNotFound means the storage is not available.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStore keeps values in a map.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

// NewMemoryStore makes an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

// Get returns the value of key or ErrNotFound.
func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[key] = value
	return nil
}

// Fail makes every following access return err, nil restores normal operation.
func (s *MemoryStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SQLiteStore persists values in a "kv" table of a sqlite database.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // sqlite allows a single writer

	createKV := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createKV); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLiteStore{db: db, timeout: 5 * time.Second}, nil
}

// Get returns the value of key or ErrNotFound.
func (s *SQLiteStore) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value of key.
func (s *SQLiteStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Scope returns a view of the store with every key prefixed by prefix and ":".
func (s *SQLiteStore) Scope(prefix string) Store {
	return &scopedStore{prefix: prefix + ":", store: s}
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scopedStore struct {
	prefix string
	store  Store
}

func (s *scopedStore) Get(key string) (string, error) { return s.store.Get(s.prefix + key) }

func (s *scopedStore) Set(key, value string) error { return s.store.Set(s.prefix+key, value) }
