// Package blob provides opaque binary object storage with signed read URLs.
package blob

import (
	"context"
	"errors"
	"time"
)

// ErrObjectExists indicates an upload targeting a path that is already taken.
// Uploads never overwrite.
var ErrObjectExists = errors.New("object already exists")

// Store is the object storage contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Upload stores data under path with the given content type. It fails
	// with ErrObjectExists when the path is already taken.
	Upload(ctx context.Context, path string, data []byte, contentType string) error

	// SignedURL returns a time-limited read URL for path. The object's
	// existence is not verified: signing a dangling path succeeds and the
	// resulting URL fails at fetch time.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)

	// Remove deletes the object at path. Removing an absent path succeeds.
	Remove(ctx context.Context, path string) error

	// List returns the paths of all objects whose path starts with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
