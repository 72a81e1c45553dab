// Package storage contains key-value blob backends for the case archive.
// Every backend stores opaque bytes under string keys; it never inspects them.
package storage

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by Get when the key has never been written.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is a minimal key-value store for whole-object blobs.
// Implementations must be safe for concurrent use; callers are responsible
// for serializing read-modify-write cycles on the same key.
type BlobStore interface {
	// Get returns the bytes stored under key, or ErrBlobNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the bytes stored under key.
	Put(ctx context.Context, key string, data []byte) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
