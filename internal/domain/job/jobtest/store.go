package jobtest

import (
	"context"

	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// Store is a job.Store over fixed per-table rows
type Store struct {
	Tables map[string][]job.Row
	// Totals overrides the reported count per table
	Totals map[string]int
	Err    error
}

var _ job.Store = (*Store)(nil)

func (s *Store) SelectRange(_ context.Context, table string, rng job.Range) (job.ResultPage, error) {
	if s.Err != nil {
		return job.ResultPage{}, s.Err
	}
	rows := s.Tables[table]
	total, ok := s.Totals[table]
	if !ok {
		total = len(rows)
	}

	from, to := rng.From, rng.To+1
	if from > len(rows) {
		from = len(rows)
	}
	if to > len(rows) {
		to = len(rows)
	}
	return job.ResultPage{Rows: rows[from:to], Total: total}, nil
}

func (s *Store) SelectByID(_ context.Context, table, id string) (job.Row, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	for _, r := range s.Tables[table] {
		if job.Stringify(r["id"]) == id {
			return r, true, nil
		}
	}
	return nil, false, nil
}
