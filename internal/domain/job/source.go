package job

import (
	"context"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Source is one table of job records in the remote store (listings, alerts, ...)
type Source interface {
	// e.g. "listings" or "alerts"
	Name() string

	// FetchPage returns normalized jobs in rng ordered newest first, plus the
	// total number of rows the source holds
	FetchPage(ctx context.Context, rng Range) ([]domain.Job, int, error)

	// Owns reports whether id was issued by this source
	Owns(id string) bool

	// FindByID loads one normalized job; ok is false when it does not exist
	FindByID(ctx context.Context, id string) (job domain.Job, ok bool, err error)
}
