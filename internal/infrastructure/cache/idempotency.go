// Package cache holds short-lived server state that may be shared between
// instances through Redis: currently the replay cache behind Idempotency-Key.
package cache

import (
	"context"
	"time"
)

// DefaultIdempotencyTTL is how long a completed response can be replayed
const DefaultIdempotencyTTL = 24 * time.Hour

// Response is a recorded reply to a request carrying an Idempotency-Key.
// Fingerprint identifies the request body the reply belongs to.
type Response struct {
	Fingerprint string `json:"fingerprint"`
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers which keys were used and what they answered.
// A key is pending between Reserve and Complete/Release.
type IdempotencyStore interface {
	// Reserve claims key for an in-flight request.
	// It returns false when the key is pending or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Lookup returns the recorded response for key. found is false for an
	// unknown key; a pending key is found with a nil response.
	Lookup(ctx context.Context, key string) (resp *Response, found bool, err error)

	// Complete records the response for a reserved key
	Complete(ctx context.Context, key string, resp Response, ttl time.Duration) error

	// Release forgets a reserved key so the request can be retried
	Release(ctx context.Context, key string) error

	Close() error
}
