package repository

import "context"

// KVStore is the persistent key-value collaborator holding the serialized
// roster under a fixed key. It offers plain get/set by key with no
// transactional or concurrency guarantees.
type KVStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value under the key.
	Set(ctx context.Context, key, value string) error
}
