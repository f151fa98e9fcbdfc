// Package store abstracts the durable key-value store that holds cached
// entries.
//
// A Store answers four questions about an entry: does it exist, how old
// is it, what are its bytes, and how to replace them. Staleness is always
// derived from the store's own last-modified metadata, never from the
// payload. FileStore is the reference backend (one artifact file per key
// under a root directory); RedisStore and S3Store cover shared object
// stores.
package store
