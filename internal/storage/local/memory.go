package local

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/honeycarbs/jobboard/internal/domain/bookmark"
)

const entryTable = "entry"

type entry struct {
	Key   string
	Value string
}

var memSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		entryTable: {
			Name: entryTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Key"},
				},
			},
		},
	},
}

// MemoryStore is a process-local store; nothing survives a restart
type MemoryStore struct {
	db *memdb.MemDB
}

var _ bookmark.Storage = (*MemoryStore)(nil)

func NewMemoryStore() (*MemoryStore, error) {
	db, err := memdb.NewMemDB(memSchema)
	if err != nil {
		return nil, fmt.Errorf("memory: create db: %w", err)
	}
	return &MemoryStore{db: db}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(entryTable, "id", key)
	if err != nil {
		return "", false, fmt.Errorf("memory: get %s: %w", key, err)
	}
	if obj == nil {
		return "", false, nil
	}
	return obj.(*entry).Value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(entryTable, &entry{Key: key, Value: value}); err != nil {
		return fmt.Errorf("memory: set %s: %w", key, err)
	}
	txn.Commit()
	return nil
}
