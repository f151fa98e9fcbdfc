package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for store operations.
var (
	ErrInvalidKey = errors.New("store: key is invalid")
	ErrKeyTooLong = errors.New("store: key exceeds max length")
	ErrNotExist   = errors.New("store: entry does not exist")
)

// Store is the interface to the durable store holding cached entries.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use, but
//   provide no ordering between concurrent writers of the same key;
//   the last write wins.
// - Staleness: Age must be computed from store-owned last-modified
//   metadata, never from anything embedded in the payload.
// - Absence: a missing entry is Exists = (false, nil), not an error.
//   Age and Read on a missing entry return an error wrapping ErrNotExist.
type Store interface {
	// EnsureNamespace creates the containing namespace for key if it does
	// not exist. Idempotent; fails only on unrecoverable I/O.
	EnsureNamespace(ctx context.Context, key string) error

	// Exists reports whether an entry is present for key.
	Exists(ctx context.Context, key string) (bool, error)

	// Age returns the time elapsed since the entry for key was last
	// written. Defined only when Exists reports true.
	Age(ctx context.Context, key string) (time.Duration, error)

	// Read returns the stored bytes for key.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the stored bytes for key and resets its age.
	Write(ctx context.Context, key string, data []byte) error
}

// ValidateKey checks whether a key is usable as an entry location.
// Keys are slash-separated relative paths; segments may not escape the
// store root.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	if strings.HasPrefix(key, "/") || strings.HasPrefix(key, "\\") {
		return ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
