package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canonkey/canonkey/digest"
)

// MaxNamespaceLength is the maximum allowed length for a key namespace.
const MaxNamespaceLength = 128

// ErrInvalidNamespace reports a namespace unusable in a string key.
var ErrInvalidNamespace = errors.New("cache: namespace is invalid")

// Cache stores computation results under canonical digests.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Errors: Get never errors; it returns (nil, false) on miss.
type Cache interface {
	// Get retrieves a cached value. Returns (nil, false) on miss.
	Get(ctx context.Context, key digest.Digest) ([]byte, bool)

	// Set stores a value under the given digest.
	Set(ctx context.Context, key digest.Digest, value []byte) error

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key digest.Digest) error
}

// Key composes a namespaced string key from a digest, for stores that want
// flat string keys (filesystems, key/value servers).
// Format: canonkey:<namespace>:<hex digest>
func Key(namespace string, d digest.Digest) (string, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return "", err
	}
	return fmt.Sprintf("canonkey:%s:%s", namespace, d.Hex()), nil
}

// ValidateNamespace checks whether a namespace is usable in a string key.
func ValidateNamespace(ns string) error {
	if ns == "" || strings.TrimSpace(ns) == "" {
		return ErrInvalidNamespace
	}
	if len(ns) > MaxNamespaceLength {
		return fmt.Errorf("%w: exceeds %d bytes", ErrInvalidNamespace, MaxNamespaceLength)
	}
	if strings.ContainsAny(ns, ":\n\r") {
		return ErrInvalidNamespace
	}
	return nil
}
