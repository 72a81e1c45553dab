package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS blobs (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TEXT NOT NULL
);`

// SQLite is a BlobStore in a local database file, the closest match to
// on-device storage.
type SQLite struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenSQLite connects to the database file at path, creating parent
// directories as needed. ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*sqlx.DB, error) {
	dsn := path
	if path != ":memory:" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = abs
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and avoids
	// SQLITE_BUSY between writers in the same process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

// NewSQLite ensures the blobs table exists and returns the store.
func NewSQLite(ctx context.Context, db *sqlx.DB) (*SQLite, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create blobs table: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

var _ BlobStore = (*SQLite)(nil)

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM blobs WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *SQLite) Put(ctx context.Context, key string, data []byte) error {
	const q = `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, q, key, data, s.now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
