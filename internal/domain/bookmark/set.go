package bookmark

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

// StorageKey is the key the saved ids are kept under
const StorageKey = "savedJobs"

// Storage is a durable string key/value store
type Storage interface {
	// Get returns the value for key; ok is false when the key was never set
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Set is an ordered, duplicate-free list of saved job ids backed by Storage
type Set struct {
	mu      sync.RWMutex
	ids     []string
	storage Storage
	logger  *logging.Logger
}

// Load reads the saved ids once from storage
func Load(ctx context.Context, storage Storage, logger *logging.Logger) (*Set, error) {
	if storage == nil {
		return nil, fmt.Errorf("bookmark: storage is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Set{storage: storage, logger: logger}

	raw, ok, err := storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("bookmark: load saved jobs: %w", err)
	}
	if !ok || raw == "" {
		return s, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("discarding unreadable saved jobs", "err", err)
		return s, nil
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}

	return s, nil
}

// Save appends id unless already present and reports whether it was added
func (s *Set) Save(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) >= 0 {
		return false
	}
	s.ids = append(s.ids, id)
	s.persist(ctx)
	return true
}

// Remove drops id if present and reports whether it was removed
func (s *Set) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
	s.persist(ctx)
	return true
}

// Contains reports whether id is saved
func (s *Set) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// IDs returns a copy of the saved ids in insertion order
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Set) indexOf(id string) int {
	for i, v := range s.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// persist writes the whole set; failures are logged and not retried
func (s *Set) persist(ctx context.Context) {
	ids := s.ids
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		s.logger.Warn("failed to encode saved jobs", "err", err)
		return
	}
	if err := s.storage.Set(ctx, StorageKey, string(b)); err != nil {
		s.logger.Warn("failed to persist saved jobs", "err", err, "count", len(ids))
	}
}
