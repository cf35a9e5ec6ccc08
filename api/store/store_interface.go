/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	Load(ctx context.Context, matchID string) (Snapshot, error)
	Save(ctx context.Context, matchID string, partial Partial) error
	IsCompleted(ctx context.Context, matchID string) (bool, error)
	Delete(ctx context.Context, matchID string) error
	Close() error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// Ensure every backend implements KV
var (
	_ KV = (*MemoryKV)(nil)
	_ KV = (*RedisKV)(nil)
	_ KV = (*MongoKV)(nil)
	_ KV = (*SQLKV)(nil)
)
