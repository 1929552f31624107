package job_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/domain/job/jobtest"
)

func newTestService(t *testing.T, primary, secondary *jobtest.Source, opts ...job.Option) (job.Service, *jobtest.Bookmarks) {
	t.Helper()

	if secondary.Prefix == "" {
		secondary.Prefix = "alert-"
	}
	bm := &jobtest.Bookmarks{}
	svc, err := job.NewService(append([]job.Option{
		job.WithSources(primary, secondary),
		job.WithBookmarks(bm),
	}, opts...)...)
	require.NoError(t, err)
	return svc, bm
}

func ids(jobs []domain.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := job.NewService()
	require.Error(t, err)

	src := jobtest.NewSource("listings", 0)
	_, err = job.NewService(job.WithSources(src, src))
	require.Error(t, err, "bookmarks are required")

	_, err = job.NewService(job.WithSources(src, src), job.WithBookmarks(&jobtest.Bookmarks{}), job.WithPageSize(0))
	require.Error(t, err)
}

func TestFetchMergesAndSortsNewestFirst(t *testing.T) {
	j2 := jobtest.Job("j2", 2)
	j1 := jobtest.Job("j1", 1)
	a3 := jobtest.Job("alert-9", 3)

	primary := jobtest.NewSource("listings", 2, j2, j1)
	secondary := jobtest.NewSource("alerts", 1, a3)
	svc, _ := newTestService(t, primary, secondary)

	require.NoError(t, svc.Fetch(context.Background()))

	if diff := cmp.Diff([]string{"alert-9", "j2", "j1"}, ids(svc.Jobs())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	p := svc.Pagination()
	require.Equal(t, 3, p.TotalJobs)
	require.Equal(t, 1, p.TotalPages)
	require.False(t, svc.Loading())
	require.Empty(t, svc.Error())
}

func TestFetchKeepsSourceOrderForEqualTimestamps(t *testing.T) {
	a := jobtest.Job("a", 5)
	b := jobtest.Job("b", 5)
	c := jobtest.Job("alert-c", 5)

	svc, _ := newTestService(t, jobtest.NewSource("listings", 2, a, b), jobtest.NewSource("alerts", 1, c))
	require.NoError(t, svc.Fetch(context.Background()))

	if diff := cmp.Diff([]string{"a", "b", "alert-c"}, ids(svc.Jobs())); diff != "" {
		t.Fatalf("stable order lost (-want +got):\n%s", diff)
	}
}

func TestFetchDropsDuplicateIDs(t *testing.T) {
	first := jobtest.Job("dup", 2)
	second := jobtest.Job("dup", 3)
	second.Title = "second"

	svc, _ := newTestService(t, jobtest.NewSource("listings", 2, first, second), jobtest.NewSource("alerts", 0))
	require.NoError(t, svc.Fetch(context.Background()))

	jobs := svc.Jobs()
	require.Len(t, jobs, 1)
	require.Equal(t, "Job dup", jobs[0].Title)
}

func TestFetchRequestsPageRange(t *testing.T) {
	primary := jobtest.NewSource("listings", 120)
	secondary := jobtest.NewSource("alerts", 30)
	svc, _ := newTestService(t, primary, secondary)

	require.NoError(t, svc.Fetch(context.Background()))
	require.Equal(t, 3, svc.Pagination().TotalPages)

	require.NoError(t, svc.SetPage(context.Background(), 2))

	want := []job.Range{{From: 0, To: 49}, {From: 50, To: 99}}
	if diff := cmp.Diff(want, primary.Ranges()); diff != "" {
		t.Fatalf("primary ranges (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, secondary.Ranges()); diff != "" {
		t.Fatalf("secondary ranges (-want +got):\n%s", diff)
	}
}

func TestFetchFailureKeepsPreviousData(t *testing.T) {
	primary := jobtest.NewSource("listings", 1, jobtest.Job("j1", 1))
	secondary := jobtest.NewSource("alerts", 0)
	svc, _ := newTestService(t, primary, secondary)

	require.NoError(t, svc.Fetch(context.Background()))

	secondary.FailFetch(errors.New("boom"))
	require.Error(t, svc.Fetch(context.Background()))

	require.Equal(t, job.FetchErrorMessage, svc.Error())
	require.False(t, svc.Loading())
	require.Equal(t, []string{"j1"}, ids(svc.Jobs()))

	secondary.FailFetch(nil)
	require.NoError(t, svc.Fetch(context.Background()))
	require.Empty(t, svc.Error(), "a successful fetch clears the error")
}

func TestFeaturedSubset(t *testing.T) {
	var jobs []domain.Job
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		j := jobtest.Job(id, 10-i)
		j.Featured = id != "c"
		jobs = append(jobs, j)
	}

	svc, _ := newTestService(t, jobtest.NewSource("listings", 5, jobs...), jobtest.NewSource("alerts", 0))
	require.NoError(t, svc.Fetch(context.Background()))

	require.Equal(t, []string{"a", "b", "d", "e"}, ids(svc.Featured(0)))
	require.Equal(t, []string{"a", "b", "d"}, ids(svc.Featured(3)))
}

func TestFetchSupersededByNewerFetch(t *testing.T) {
	primary := jobtest.NewSource("listings", 1, jobtest.Job("old", 1))
	secondary := jobtest.NewSource("alerts", 0)
	svc, _ := newTestService(t, primary, secondary)

	release := primary.Block()
	defer release()

	first := make(chan error, 1)
	go func() { first <- svc.Fetch(context.Background()) }()

	require.Eventually(t, func() bool { return len(primary.Ranges()) == 1 }, time.Second, time.Millisecond)
	require.True(t, svc.Loading())

	primary.SetJobs(1, jobtest.Job("new", 2))
	second := make(chan error, 1)
	go func() { second <- svc.Fetch(context.Background()) }()

	select {
	case err := <-first:
		require.ErrorIs(t, err, job.ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded fetch did not return")
	}
	require.True(t, svc.Loading(), "newer fetch still in flight")
	require.Empty(t, svc.Error())

	release()
	require.NoError(t, <-second)
	require.Equal(t, []string{"new"}, ids(svc.Jobs()))
	require.False(t, svc.Loading())
}

func TestSetPageBounds(t *testing.T) {
	svc, _ := newTestService(t, jobtest.NewSource("listings", 120), jobtest.NewSource("alerts", 30))
	ctx := context.Background()

	require.ErrorIs(t, svc.SetPage(ctx, 0), job.ErrInvalidPage)
	require.NoError(t, svc.Fetch(ctx))
	require.ErrorIs(t, svc.SetPage(ctx, 4), job.ErrInvalidPage)
	require.Equal(t, 1, svc.Page())

	require.NoError(t, svc.SetPage(ctx, 3))
	p := svc.Pagination()
	require.Equal(t, 3, p.Page)
	require.True(t, p.HasPrev)
	require.False(t, p.HasNext)
	require.Equal(t, []int{1, 2, 3}, p.Window)
}

func TestPageSizeOption(t *testing.T) {
	primary := jobtest.NewSource("listings", 25)
	svc, _ := newTestService(t, primary, jobtest.NewSource("alerts", 0), job.WithPageSize(10))

	require.NoError(t, svc.Fetch(context.Background()))
	require.Equal(t, 3, svc.Pagination().TotalPages)
	require.Equal(t, []job.Range{{From: 0, To: 9}}, primary.Ranges())
}

func TestFiltersApplyToLoadedPage(t *testing.T) {
	eng := jobtest.Job("eng", 3)
	eng.Title = "Go Engineer"
	eng.Remote = true
	des := jobtest.Job("des", 2)
	des.Title = "Designer"
	des.Category = domain.CategoryDesign

	primary := jobtest.NewSource("listings", 2, eng, des)
	svc, _ := newTestService(t, primary, jobtest.NewSource("alerts", 0))
	ctx := context.Background()

	require.NoError(t, svc.SetFilters(ctx, domain.Filters{Search: "ENGINEER"}))
	require.Equal(t, []string{"eng"}, ids(svc.Filtered()))
	require.Len(t, svc.Jobs(), 2, "filters do not change the loaded page")

	require.NoError(t, svc.SetFilters(ctx, domain.Filters{Category: domain.CategoryDesign}))
	require.Equal(t, []string{"des"}, ids(svc.Filtered()))

	require.ErrorIs(t, svc.SetFilters(ctx, domain.Filters{JobType: "Gig"}), job.ErrInvalidFilter)
	require.Equal(t, domain.CategoryDesign, svc.Filters().Category, "rejected filters leave state alone")

	require.NoError(t, svc.ClearFilters(ctx))
	require.True(t, svc.Filters().IsZero())
	require.Len(t, svc.Filtered(), 2)
}

func TestGetJobByIDRoutesByPrefix(t *testing.T) {
	primary := jobtest.NewSource("listings", 1, jobtest.Job("42", 1))
	secondary := jobtest.NewSource("alerts", 1, jobtest.Job("alert-42", 1))
	svc, _ := newTestService(t, primary, secondary)
	ctx := context.Background()

	j, ok := svc.GetJobByID(ctx, "alert-42")
	require.True(t, ok)
	require.Equal(t, "alert-42", j.ID)

	j, ok = svc.GetJobByID(ctx, "42")
	require.True(t, ok)
	require.Equal(t, "42", j.ID)

	_, ok = svc.GetJobByID(ctx, "missing")
	require.False(t, ok)
	require.Empty(t, svc.Error(), "not found is not an error")
}

func TestGetJobByIDFailure(t *testing.T) {
	primary := jobtest.NewSource("listings", 1, jobtest.Job("42", 1))
	svc, _ := newTestService(t, primary, jobtest.NewSource("alerts", 0))

	primary.FailFind(errors.New("timeout"))

	_, ok := svc.GetJobByID(context.Background(), "42")
	require.False(t, ok)
	require.Equal(t, job.LookupErrorMessage, svc.Error())

	_, _, err := svc.FindJob(context.Background(), "42")
	require.Error(t, err)
}

func TestSavedJobsAreIdempotent(t *testing.T) {
	svc, _ := newTestService(t, jobtest.NewSource("listings", 0), jobtest.NewSource("alerts", 0))
	ctx := context.Background()

	require.True(t, svc.SaveJob(ctx, "a"))
	require.False(t, svc.SaveJob(ctx, "a"))
	require.True(t, svc.SaveJob(ctx, "b"))
	require.Equal(t, []string{"a", "b"}, svc.SavedJobs())
	require.True(t, svc.IsSaved("a"))

	require.True(t, svc.RemoveSavedJob(ctx, "a"))
	require.False(t, svc.RemoveSavedJob(ctx, "a"))
	require.Equal(t, []string{"b"}, svc.SavedJobs())
	require.False(t, svc.IsSaved("a"))
}

func TestSnapshotIsConsistent(t *testing.T) {
	j := jobtest.Job("j", 1)
	j.Featured = true
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	svc, _ := newTestService(t, jobtest.NewSource("listings", 1, j), jobtest.NewSource("alerts", 0),
		job.WithClock(func() time.Time { return now }))
	require.NoError(t, svc.Fetch(context.Background()))

	snap := svc.Snapshot()
	require.Equal(t, now, snap.FetchedAt)
	require.Equal(t, []string{"j"}, ids(snap.Jobs))
	require.Equal(t, []string{"j"}, ids(snap.Featured))
	require.Equal(t, []string{"j"}, ids(snap.Filtered))
	require.Equal(t, 1, snap.Pagination.TotalPages)
}

func TestResolveKeepsOrder(t *testing.T) {
	primary := jobtest.NewSource("listings", 2, jobtest.Job("a", 1), jobtest.Job("b", 2))
	svc, _ := newTestService(t, primary, jobtest.NewSource("alerts", 0))

	jobs, missing := job.Resolve(context.Background(), svc, []string{"b", "gone", "a"})
	require.Equal(t, []string{"b", "a"}, ids(jobs))
	require.Equal(t, []string{"gone"}, missing)
}
