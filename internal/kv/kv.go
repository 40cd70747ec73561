// Package kv provides the flat key-value persistence layer. Records are
// opaque JSON values addressed by string keys; record types share the
// namespace via key prefixes.
package kv

import (
	"context"
	"encoding/json"
)

// Entry is a single key-value pair as returned by prefix scans.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Store is the persistence contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value stored under key, or (nil, nil) when the key
	// is absent. An absent key is not an error at this layer.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set stores value under key, unconditionally overwriting any
	// existing value.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error

	// ScanPrefix returns all entries whose key starts with prefix,
	// ordered by key. There is no pagination: callers get the full set.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
