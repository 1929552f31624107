package job

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// resolveConcurrency bounds parallel lookups in Resolve
const resolveConcurrency = 4

// Resolve looks up ids concurrently and returns the found jobs in id order
// along with the ids that could not be resolved
func Resolve(ctx context.Context, svc Service, ids []string) ([]domain.Job, []string) {
	found := make([]*domain.Job, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			if j, ok := svc.GetJobByID(gctx, id); ok {
				found[i] = &j
			}
			return nil
		})
	}
	_ = g.Wait()

	jobs := make([]domain.Job, 0, len(ids))
	var missing []string
	for i, j := range found {
		if j == nil {
			missing = append(missing, ids[i])
			continue
		}
		jobs = append(jobs, *j)
	}
	return jobs, missing
}
