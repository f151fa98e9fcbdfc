package memo

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultRootDir is the directory name used under the user cache
// directory when no root is configured.
const DefaultRootDir = "memocache"

// Keyer derives a cache key from an operation's logical identity.
//
// Contract:
// - Determinism: the same operation and input must produce the same key
//   regardless of map iteration order.
// - Isolation: distinct logical operations should not collide; a
//   collision silently reuses the wrong entry.
type Keyer interface {
	// Key derives a cache key for op applied to input.
	Key(op string, input any) (string, error)
}

// HashKeyer derives path-safe keys of the form <op>/<hash>, where hash
// is the first 16 hex characters of SHA-256 over a canonical JSON
// rendering of the input.
type HashKeyer struct{}

// NewHashKeyer creates a HashKeyer.
func NewHashKeyer() *HashKeyer { return &HashKeyer{} }

// Key derives a deterministic key for op applied to input.
func (k *HashKeyer) Key(op string, input any) (string, error) {
	canonical, err := canonicalJSON(input)
	if err != nil {
		return "", fmt.Errorf("memo: canonicalize input: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return op + "/" + hex.EncodeToString(sum[:8]), nil
}

// canonicalJSON renders v as JSON with map keys sorted, so logically
// equal inputs always serialize to the same bytes.
func canonicalJSON(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := []byte("{")
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			out = append(out, kb...)
			out = append(out, ':')
			vb, err := canonicalJSON(val[k])
			if err != nil {
				return nil, err
			}
			out = append(out, vb...)
		}
		return append(out, '}'), nil
	case []any:
		out := []byte("[")
		for i, item := range val {
			if i > 0 {
				out = append(out, ',')
			}
			vb, err := canonicalJSON(item)
			if err != nil {
				return nil, err
			}
			out = append(out, vb...)
		}
		return append(out, ']'), nil
	default:
		return json.Marshal(v)
	}
}

// ArgKey joins an operation name and its arguments into a path-shaped
// key, so distinct argument sets resolve to distinct entries:
// ArgKey("weather", 10) == "weather/10". Argument renderings are
// sanitized to stay within one path segment each.
func ArgKey(op string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op)
	for _, a := range args {
		parts = append(parts, sanitizeSegment(fmt.Sprint(a)))
	}
	return strings.Join(parts, "/")
}

func sanitizeSegment(s string) string {
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '\n', '\r', ' ':
			return '_'
		}
		return r
	}, s)
}

// DefaultRoot resolves the default cache root: ~/.cache/memocache when
// the home directory environment variable is set, otherwise the
// relative path .cache/memocache. It never fails.
func DefaultRoot() string {
	return ExpandHome("~/.cache/" + DefaultRootDir)
}

// ExpandHome replaces a leading "~" with the home directory from the
// environment. When no home is set, the tilde prefix is stripped so the
// result degrades to a relative path.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, ok := os.LookupEnv("HOME")
	if !ok || home == "" {
		rel := strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/")
		if rel == "" {
			return "."
		}
		return filepath.Clean(rel)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Ensure HashKeyer implements Keyer
var _ Keyer = (*HashKeyer)(nil)
