package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/honeycarbs/jobboard/internal/domain/bookmark"
)

const (
	fileName     = "storage.json"
	lockName     = "storage.lock"
	lockInterval = 50 * time.Millisecond
)

// FileStore keeps all keys in one JSON object inside a data directory.
// Writers from other processes are serialized with an advisory file lock.
type FileStore struct {
	path string
	lock *flock.Flock
}

var _ bookmark.Storage = (*FileStore)(nil)

// NewFileStore creates dir if needed and returns a store rooted there
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local: data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local: create data dir: %w", err)
	}
	return &FileStore{
		path: filepath.Join(dir, fileName),
		lock: flock.New(filepath.Join(dir, lockName)),
	}, nil
}

// Path is the JSON file backing the store
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	ok, err := s.lock.TryRLockContext(ctx, lockInterval)
	if err != nil || !ok {
		return "", false, fmt.Errorf("local: acquire read lock: %w", lockErr(err))
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, found := values[key]
	return v, found, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	ok, err := s.lock.TryLockContext(ctx, lockInterval)
	if err != nil || !ok {
		return fmt.Errorf("local: acquire write lock: %w", lockErr(err))
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("local: read %s: %w", s.path, err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("local: decode %s: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("local: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".*")
	if err != nil {
		return fmt.Errorf("local: create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("local: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("local: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("local: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("local: replace %s: %w", s.path, err)
	}
	return nil
}

func lockErr(err error) error {
	if err != nil {
		return err
	}
	return errors.New("lock not acquired")
}
