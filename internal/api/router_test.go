package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/domain/job/jobtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router    *gin.Engine
	svc       job.Service
	primary   *jobtest.Source
	secondary *jobtest.Source
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	design := jobtest.Job("d1", 4)
	design.Category = domain.CategoryDesign
	design.Remote = true
	featured := jobtest.Job("f1", 3)
	featured.Featured = true

	primary := jobtest.NewSource("listings", 3, design, featured, jobtest.Job("j1", 1))
	secondary := jobtest.NewSource("alerts", 1, jobtest.Job("alert-7", 2))
	secondary.Prefix = "alert-"

	svc, err := job.NewService(
		job.WithSources(primary, secondary),
		job.WithBookmarks(&jobtest.Bookmarks{}),
		job.WithPageSize(3),
	)
	require.NoError(t, err)

	return &fixture{router: NewRouter(svc, nil, nil), svc: svc, primary: primary, secondary: secondary}
}

func (f *fixture) serve(method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func (f *fixture) do(t *testing.T, method, path string, out any) int {
	t.Helper()
	rec := f.serve(method, path)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

type errorBody struct {
	Error Error `json:"error"`
}

func jobIDs(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestListJobsFetchesOnFirstRequest(t *testing.T) {
	f := newFixture(t)

	var body JobsResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/jobs", &body))
	require.Equal(t, []string{"d1", "f1", "alert-7", "j1"}, jobIDs(body.Jobs))
	require.Equal(t, 4, body.Pagination.TotalJobs)
	require.Equal(t, 2, body.Pagination.TotalPages)
	require.False(t, body.FetchedAt.IsZero())
}

func TestListJobsFiltersPerRequest(t *testing.T) {
	f := newFixture(t)

	var body JobsResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/jobs?category=Design&remote=true", &body))
	require.Equal(t, []string{"d1"}, jobIDs(body.Jobs))
	require.Equal(t, domain.CategoryDesign, body.Filters.Category)

	require.True(t, f.svc.Filters().IsZero())
}

func TestListJobsRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	var body errorBody
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/jobs?category=Astrology", &body))
	require.Equal(t, "invalid_filter", body.Error.Code)

	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/jobs?page=-1", &body))
	require.Equal(t, "invalid_query", body.Error.Code)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/jobs", nil))
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/jobs?page=9", &body))
	require.Equal(t, "invalid_page", body.Error.Code)
}

func TestListJobsFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.secondary.FailFetch(errors.New("connection refused"))

	var body errorBody
	require.Equal(t, http.StatusBadGateway, f.do(t, http.MethodGet, "/api/v1/jobs", &body))
	require.Equal(t, job.FetchErrorMessage, body.Error.Message)
}

func TestGetJob(t *testing.T) {
	f := newFixture(t)

	var found struct {
		Job   domain.Job `json:"job"`
		Saved bool       `json:"saved"`
	}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/jobs/alert-7", &found))
	require.Equal(t, "alert-7", found.Job.ID)
	require.False(t, found.Saved)

	var body errorBody
	require.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/jobs/nope", &body))
	require.Equal(t, "not_found", body.Error.Code)

	f.primary.FailFind(errors.New("timeout"))
	require.Equal(t, http.StatusBadGateway, f.do(t, http.MethodGet, "/api/v1/jobs/j1", &body))
	require.Equal(t, job.LookupErrorMessage, body.Error.Message)
}

func TestFeaturedAndCategories(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/jobs", nil))

	var featured struct {
		Jobs []domain.Job `json:"jobs"`
	}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/jobs/featured?limit=3", &featured))
	require.Equal(t, []string{"f1"}, jobIDs(featured.Jobs))

	var cats struct {
		Categories []domain.CategoryCount `json:"categories"`
	}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/categories", &cats))
	counts := map[domain.Category]int{}
	for _, c := range cats.Categories {
		counts[c.Category] = c.Count
	}
	require.Equal(t, 3, counts[domain.CategoryTechnology])
	require.Equal(t, 1, counts[domain.CategoryDesign])
}

func TestSavedJobs(t *testing.T) {
	f := newFixture(t)

	var saved struct {
		ID      string   `json:"id"`
		Changed bool     `json:"changed"`
		Saved   []string `json:"saved"`
	}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/v1/saved/j1", &saved))
	require.True(t, saved.Changed)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/v1/saved/j1", &saved))
	require.False(t, saved.Changed)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/v1/saved/gone", &saved))
	require.Equal(t, []string{"j1", "gone"}, saved.Saved)

	var list struct {
		IDs     []string     `json:"ids"`
		Jobs    []domain.Job `json:"jobs"`
		Missing []string     `json:"missing"`
	}
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/saved?resolve=true", &list))
	require.Equal(t, []string{"j1"}, jobIDs(list.Jobs))
	require.Equal(t, []string{"gone"}, list.Missing)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/v1/saved/j1", &saved))
	require.True(t, saved.Changed)
	require.Equal(t, []string{"gone"}, saved.Saved)
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)

	var body errorBody
	require.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/nothing", &body))
	require.Equal(t, "not_found", body.Error.Code)
}

func TestListJobsPageReplacedWhileLoading(t *testing.T) {
	f := newFixture(t)
	f.primary.SetJobs(9, jobtest.Job("j1", 1))
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/jobs", nil))

	release := f.primary.Block()
	defer release()

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- f.serve(http.MethodGet, "/api/v1/jobs?page=2") }()
	require.Eventually(t, func() bool { return len(f.primary.Ranges()) == 2 }, time.Second, 5*time.Millisecond)

	second := make(chan *httptest.ResponseRecorder, 1)
	go func() { second <- f.serve(http.MethodGet, "/api/v1/jobs?page=3") }()

	rec := <-first
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "page_changed", body.Error.Code)

	release()
	rec = <-second
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page JobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 3, page.Pagination.Page)
}
