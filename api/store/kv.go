/* kv.go
 * Contains the KV interface that every storage backend implements. The lifecycle store only needs string keys mapped
 * to JSON documents, so each backend is a thin adapter over its client library.
 */

package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KV.Get when the key has never been written or was deleted
var ErrKeyNotFound = errors.New("key not found")

// KV is a namespaced, last-write-wins key value backend
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetNX writes value only when key is absent and reports whether it did
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
