package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/ports"
)

// FileStore keeps one file per key under a directory. Writes go to a
// temporary file that is renamed over the target, so a crash never leaves a
// half-written document behind.
type FileStore struct {
	dir string

	// mu serializes writers; rename makes reads safe without it.
	mu sync.Mutex
}

var (
	_ ports.KeyValueStore = (*FileStore)(nil)
	_ ports.HealthChecker = (*FileStore)(nil)
)

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating storage dir %q: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

// Get returns the value for key.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", domain.NewNotFoundError("key", key)
	}

	if err != nil {
		return "", fmt.Errorf("reading %q: %w", key, err)
	}

	return string(b), nil
}

// Set stores value under key.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %q: %w", key, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %q: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("replacing %q: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting %q: %w", key, err)
	}

	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}

// Name implements ports.HealthChecker.
func (s *FileStore) Name() string {
	return "storage-file"
}

// Check verifies the storage directory is still present.
func (s *FileStore) Check(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("storage dir: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("storage dir %q is not a directory", s.dir)
	}

	return nil
}

// path maps a key to its file. Keys are escaped so they can never leave dir.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}
