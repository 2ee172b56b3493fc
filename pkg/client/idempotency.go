package client

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DeriveIdempotencyKey builds a deterministic idempotency key from a
// namespace and the parts identifying one logical operation.
//
// The key is namespace + ":" + the first 16 bytes of
// SHA-256(parts joined by ":") in hex, so identical inputs always map to
// the same key and differing inputs collide only with SHA-256 collision
// probability. Parts are hashed as given, with no case or whitespace
// normalization.
//
//	key := client.DeriveIdempotencyKey("order-service", "order-12345", "refund-check")
//	// => "order-service:a1b2c3d4..."
func DeriveIdempotencyKey(namespace string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}

// NewIdempotencyKey returns a random idempotency key under the given
// namespace, for callers without a natural deterministic identity.
func NewIdempotencyKey(namespace string) string {
	return namespace + ":" + uuid.NewString()
}
