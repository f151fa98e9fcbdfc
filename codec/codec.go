package codec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Codec serializes success payloads for durable storage.
//
// Contract:
// - Round-trip: Unmarshal(Marshal(v)) must reproduce a value equal to v
//   for any payload the codec claims to support.
// - Concurrency: implementations must be safe for concurrent use.
type Codec interface {
	// Name identifies the format, e.g. "json".
	Name() string

	// Marshal encodes a payload to bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes bytes into the pointed-to payload.
	Unmarshal(data []byte, v any) error
}

// JSON is the default codec. Entries written by it match the reference
// single-file-per-key layout (data.json).
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// YAML encodes entries as YAML documents.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

func (YAML) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// Ensure both codecs implement Codec
var (
	_ Codec = JSON{}
	_ Codec = YAML{}
)
