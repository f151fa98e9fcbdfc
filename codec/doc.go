// Package codec defines the serialization format for cached payloads.
//
// JSON is the default and the reference on-disk format; YAML is provided
// for caches that are meant to be read or edited by hand.
package codec
