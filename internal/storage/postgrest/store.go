package postgrest

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/postgrest"
)

// Store implements job.Store over a PostgREST endpoint
type Store struct {
	client *postgrest.Client
}

var _ job.Store = (*Store)(nil)

// NewStore creates a Store with a PostgREST client
func NewStore(client *postgrest.Client) *Store {
	return &Store{client: client}
}

func (s *Store) SelectRange(ctx context.Context, table string, rng job.Range) (job.ResultPage, error) {
	res, err := s.client.Select(ctx, table, postgrest.Query{
		Order:      []postgrest.Order{{Column: "created_at", Descending: true}},
		Offset:     rng.From,
		Limit:      rng.Limit(),
		CountExact: true,
	})
	if err != nil {
		return job.ResultPage{}, fmt.Errorf("select %s range %s: %w", table, rng, err)
	}

	total := res.Total
	if total < 0 {
		total = len(res.Rows)
	}
	return job.ResultPage{Rows: res.Rows, Total: total}, nil
}

func (s *Store) SelectByID(ctx context.Context, table, id string) (job.Row, bool, error) {
	res, err := s.client.Select(ctx, table, postgrest.Query{
		Eq:    map[string]string{"id": id},
		Limit: 1,
	})
	if err != nil {
		return nil, false, fmt.Errorf("select %s id %s: %w", table, id, err)
	}
	if len(res.Rows) == 0 {
		return nil, false, nil
	}
	return res.Rows[0], true, nil
}
