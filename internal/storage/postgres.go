package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Postgres is a BlobStore backed by the blobs table.
// It uses database/sql with parameterized queries and contains no business logic.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgres wraps an open connection. The schema is created by
// migration.EnsureMigrated.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

var _ BlobStore = (*Postgres)(nil)

// Get fetches the blob stored under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM blobs WHERE key = $1`
	var value []byte
	if err := p.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return value, nil
}

// Put upserts the blob in a single statement.
func (p *Postgres) Put(ctx context.Context, key string, data []byte) error {
	const q = `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := p.db.ExecContext(ctx, q, key, data, p.now().UTC())
	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
