package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultArtifact is the per-key artifact filename used by FileStore.
const DefaultArtifact = "data.json"

// FileStore is the reference Store backed by a directory tree. Each key
// maps to one artifact file at <root>/<key>/<artifact>, and the file's
// modification time is the staleness signal.
type FileStore struct {
	root     string
	artifact string
}

// NewFileStore creates a FileStore rooted at root. The root is not
// created until the first EnsureNamespace or Write.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root, artifact: DefaultArtifact}
}

// NewFileStoreArtifact creates a FileStore with a custom artifact
// filename, e.g. "data.yaml" when paired with a YAML codec.
func NewFileStoreArtifact(root, artifact string) *FileStore {
	if artifact == "" {
		artifact = DefaultArtifact
	}
	return &FileStore{root: root, artifact: artifact}
}

// Root returns the root directory of the store.
func (s *FileStore) Root() string { return s.root }

// Path returns the artifact path for key. The file may not exist.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key), s.artifact)
}

// EnsureNamespace creates the entry directory for key if absent.
func (s *FileStore) EnsureNamespace(_ context.Context, key string) error {
	dir := filepath.Dir(s.Path(key))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create namespace %q: %w", dir, err)
	}
	return nil
}

// Exists reports whether the artifact file for key is present.
func (s *FileStore) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(s.Path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("store: stat %q: %w", key, err)
}

// Age returns time elapsed since the artifact for key was last written.
func (s *FileStore) Age(_ context.Context, key string) (time.Duration, error) {
	fi, err := os.Stat(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("store: age of %q: %w", key, ErrNotExist)
		}
		return 0, fmt.Errorf("store: stat %q: %w", key, err)
	}
	return time.Since(fi.ModTime()), nil
}

// Read returns the artifact bytes for key.
func (s *FileStore) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("store: read %q: %w", key, ErrNotExist)
		}
		return nil, fmt.Errorf("store: read %q: %w", key, err)
	}
	return data, nil
}

// Write replaces the artifact for key. The bytes land in a temp file in
// the entry directory first and are renamed into place, so a concurrent
// Read never observes a torn write. No lock is taken: concurrent writers
// of the same key race and the last rename wins.
func (s *FileStore) Write(_ context.Context, key string, data []byte) error {
	target := s.Path(key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create namespace %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, s.artifact+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	return nil
}

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)
