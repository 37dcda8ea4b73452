// Package cache provides a small key/value cache used to hold ranking results
// between writes.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encodable values under string keys.
type Cache interface {
	// Get decodes the value stored under key into dst.
	Get(ctx context.Context, key string, dst interface{}) error

	// Set stores value under key for ttl. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
