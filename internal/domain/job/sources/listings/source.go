package listings

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobboard/internal/domain"
	jobdomain "github.com/honeycarbs/jobboard/internal/domain/job"
)

// Table is the primary job table, already in the unified shape
const Table = "jobs"

// Source implements job.Source over the primary jobs table
type Source struct {
	store jobdomain.Store
}

// NewSource builds the listings source
func NewSource(store jobdomain.Store) (*Source, error) {
	if store == nil {
		return nil, fmt.Errorf("listings source: store is required")
	}
	return &Source{store: store}, nil
}

// Name returns source identifier
func (s *Source) Name() string {
	return "listings"
}

// Owns is true for every id: listing ids carry no namespace
func (s *Source) Owns(string) bool {
	return true
}

// FetchPage loads a window of listings
func (s *Source) FetchPage(ctx context.Context, rng jobdomain.Range) ([]domain.Job, int, error) {
	page, err := s.store.SelectRange(ctx, Table, rng)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Job, 0, len(page.Rows))
	for _, row := range page.Rows {
		j, err := decode(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	return out, page.Total, nil
}

// FindByID loads one listing
func (s *Source) FindByID(ctx context.Context, id string) (domain.Job, bool, error) {
	row, ok, err := s.store.SelectByID(ctx, Table, id)
	if err != nil || !ok {
		return domain.Job{}, false, err
	}

	j, err := decode(row)
	if err != nil {
		return domain.Job{}, false, err
	}
	return j, true, nil
}

func decode(row jobdomain.Row) (domain.Job, error) {
	var j domain.Job
	if err := jobdomain.DecodeRow(row, &j, "json"); err != nil {
		return domain.Job{}, fmt.Errorf("listings: decode row %v: %w", row["id"], err)
	}
	return j, nil
}

var _ jobdomain.Source = (*Source)(nil)
