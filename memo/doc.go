// Package memo provides transparent, time-bounded, durable memoization
// of expensive context-aware operations.
//
// A Cache applies a stateless get-or-compute protocol per invocation
// against a durable store: resolve the entry for a key, answer from
// storage while the entry is younger than the TTL, otherwise run the
// operation and persist its success payload in the background. Failures
// returned by the operation are passed through untouched and are never
// cached.
//
// Call sites bind through higher-order wrappers (Wrap, WrapValue,
// Wrap1) or invoke GetOrCompute directly.
package memo
