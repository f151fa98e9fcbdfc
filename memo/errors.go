package memo

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine misuse, detected before the store is touched.
var (
	ErrNilCache    = errors.New("memo: cache is nil")
	ErrNilCompute  = errors.New("memo: compute function is nil")
	ErrNegativeTTL = errors.New("memo: ttl is negative")
)

// StoreError reports an infrastructure fault in the cache layer:
// namespace creation, existence or age probing, reading, or decoding an
// entry believed fresh. It is never used for failures returned by the
// wrapped operation itself, which pass through unchanged.
type StoreError struct {
	Op  string // "ensure", "probe", "read", "decode"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("memo: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsStoreError reports whether err originated in the cache layer rather
// than the wrapped operation.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
