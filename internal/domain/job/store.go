package job

import (
	"context"
	"fmt"
)

// Row is a single record as returned by the remote store
type Row = map[string]any

// Range is an inclusive, zero-based row window
type Range struct {
	From int
	To   int
}

// PageRange computes the row window for a 1-based page
func PageRange(page, size int) Range {
	start := (page - 1) * size
	return Range{From: start, To: start + size - 1}
}

// Limit is the number of rows covered by r
func (r Range) Limit() int {
	return r.To - r.From + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// ResultPage is a window of rows with the exact table count
type ResultPage struct {
	Rows  []Row
	Total int
}

// Store is the remote hosted database the sources read from
type Store interface {
	// SelectRange returns rows of table in rng ordered by created_at descending
	SelectRange(ctx context.Context, table string, rng Range) (ResultPage, error)

	// SelectByID returns the row whose id column equals id
	SelectByID(ctx context.Context, table, id string) (Row, bool, error)
}
