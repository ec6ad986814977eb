// Package cache provides byte-level caching for expensive graph work:
// score vectors, rendered DOT and SVG artifacts, and encoded graphs.
//
// Backends share a single interface. The file backend serves CLI usage,
// the redis backend serves the HTTP server, and the null backend turns
// caching off entirely. Keys are derived from content hashes (see
// [GraphHash]) so identical graphs share cache entries regardless of
// where they came from.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends. A miss is
// reported through the bool return, not an error; errors mean the
// backend itself failed.
type Cache interface {
	// Get retrieves the value stored under key. The second return is
	// false when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl stores the entry
	// without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
