package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// Store implements job.Store directly against Postgres
type Store struct {
	pool *pgxpool.Pool
}

var _ job.Store = (*Store)(nil)

// Open connects a pool to databaseURL and verifies it
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// NewStore creates a Store with a connection pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) SelectRange(ctx context.Context, table string, rng job.Range) (job.ResultPage, error) {
	ident := pgx.Identifier{table}.Sanitize()

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM "+ident).Scan(&total); err != nil {
		return job.ResultPage{}, fmt.Errorf("postgres: count %s: %w", table, err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT * FROM "+ident+" ORDER BY created_at DESC OFFSET $1 LIMIT $2",
		rng.From, rng.Limit(),
	)
	if err != nil {
		return job.ResultPage{}, fmt.Errorf("postgres: select %s range %s: %w", table, rng, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return job.ResultPage{}, fmt.Errorf("postgres: scan %s: %w", table, err)
	}

	out := make([]job.Row, len(records))
	for i, r := range records {
		out[i] = r
	}
	return job.ResultPage{Rows: out, Total: total}, nil
}

func (s *Store) SelectByID(ctx context.Context, table, id string) (job.Row, bool, error) {
	ident := pgx.Identifier{table}.Sanitize()

	// id columns may be uuid or integer; compare as text
	rows, err := s.pool.Query(ctx, "SELECT * FROM "+ident+" WHERE id::text = $1 LIMIT 1", id)
	if err != nil {
		return nil, false, fmt.Errorf("postgres: select %s id %s: %w", table, id, err)
	}

	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("postgres: scan %s: %w", table, err)
	}
	return record, true, nil
}
