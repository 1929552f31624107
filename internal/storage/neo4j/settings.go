package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobboard/internal/domain/bookmark"
	pkgneo4j "github.com/honeycarbs/jobboard/pkg/neo4j"
)

// SettingStore implements bookmark.Storage with (:Setting {key, value}) nodes
type SettingStore struct {
	client *pkgneo4j.Client
}

var _ bookmark.Storage = (*SettingStore)(nil)

// NewSettingStore creates a SettingStore with a Neo4j client
func NewSettingStore(client *pkgneo4j.Client) *SettingStore {
	return &SettingStore{client: client}
}

// EnsureSchema creates the uniqueness constraint on Setting.key
func (s *SettingStore) EnsureSchema(ctx context.Context) error {
	_, err := s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx,
			`CREATE CONSTRAINT setting_key IF NOT EXISTS FOR (s:Setting) REQUIRE s.key IS UNIQUE`,
			nil,
		)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to create setting constraint: %w", err)
	}
	return nil
}

func (s *SettingStore) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := s.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx,
			`MATCH (s:Setting {key: $key}) RETURN s.value AS value LIMIT 1`,
			map[string]any{"key": key},
		)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, nil
		}
		value, _, err := neo4j.GetRecordValue[string](records[0], "value")
		if err != nil {
			return nil, err
		}
		return &value, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	value, _ := res.(*string)
	if value == nil {
		return "", false, nil
	}
	return *value, true, nil
}

func (s *SettingStore) Set(ctx context.Context, key, value string) error {
	_, err := s.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MERGE (s:Setting {key: $key})
			SET s.value = $value,
			    s.updatedAt = datetime()
		`, map[string]any{"key": key, "value": value})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}
