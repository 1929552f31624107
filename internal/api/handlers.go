package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// JobHandler serves the jobs and saved-jobs endpoints
type JobHandler struct {
	svc job.Service
}

func NewJobHandler(svc job.Service) *JobHandler {
	return &JobHandler{svc: svc}
}

type listQuery struct {
	Page            int    `form:"page" binding:"omitempty,min=1"`
	Search          string `form:"search"`
	Category        string `form:"category"`
	JobType         string `form:"job_type"`
	ExperienceLevel string `form:"experience_level"`
	Remote          bool   `form:"remote"`
	Refresh         bool   `form:"refresh"`
}

func (q listQuery) filters() domain.Filters {
	return domain.Filters{
		Search:          q.Search,
		Category:        domain.Category(q.Category),
		JobType:         domain.JobType(q.JobType),
		ExperienceLevel: domain.ExperienceLevel(q.ExperienceLevel),
		Remote:          q.Remote,
	}
}

// JobsResponse is the body of GET /jobs
type JobsResponse struct {
	Jobs       []domain.Job      `json:"jobs"`
	Filters    domain.Filters    `json:"filters"`
	Pagination domain.Pagination `json:"pagination"`
	Loading    bool              `json:"loading"`
	FetchedAt  time.Time         `json:"fetched_at"`
}

// ListJobs is the GET /jobs endpoint. Filters in the query apply to this
// request only and narrow the loaded page without refetching. The page is
// shared by every client of the service: when another request moves it before
// this one's fetch completes, the answer is 409 rather than a different page.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, errBadRequest("invalid_query", err.Error()))
		return
	}

	f := q.filters()
	if err := f.Validate(); err != nil {
		abort(c, errBadRequest("invalid_filter", err.Error()))
		return
	}

	if err := h.ensurePage(c.Request.Context(), q.Page, q.Refresh); err != nil {
		if errors.Is(err, job.ErrInvalidPage) {
			abort(c, errBadRequest("invalid_page", err.Error()))
			return
		}
		abort(c, errFetch())
		return
	}

	snap := h.svc.Snapshot()
	if q.Page > 0 && snap.Pagination.Page != q.Page {
		abort(c, errPageChanged(q.Page, snap.Pagination.Page))
		return
	}
	c.JSON(http.StatusOK, JobsResponse{
		Jobs:       job.Filter(snap.Jobs, f),
		Filters:    f,
		Pagination: snap.Pagination,
		Loading:    snap.Loading,
		FetchedAt:  snap.FetchedAt,
	})
}

// ensurePage loads page when it differs from the current one, refetches on
// refresh, and retries when nothing has been loaded yet
func (h *JobHandler) ensurePage(ctx context.Context, page int, refresh bool) error {
	var err error
	switch {
	case page > 0 && page != h.svc.Page():
		err = h.svc.SetPage(ctx, page)
	case refresh || h.svc.Snapshot().FetchedAt.IsZero():
		err = h.svc.Fetch(ctx)
	}
	if errors.Is(err, job.ErrSuperseded) {
		return nil
	}
	return err
}

type featuredQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

// Featured is the GET /jobs/featured endpoint
func (h *JobHandler) Featured(c *gin.Context) {
	var q featuredQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, errBadRequest("invalid_query", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": h.svc.Featured(q.Limit)})
}

// GetJob is the GET /jobs/:id endpoint
func (h *JobHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	j, ok, err := h.svc.FindJob(c.Request.Context(), id)
	if err != nil {
		abort(c, errLookup())
		return
	}
	if !ok {
		abort(c, errNotFound("job "+id+" not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": j, "saved": h.svc.IsSaved(j.ID)})
}

// Categories is the GET /categories endpoint
func (h *JobHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.svc.CategoryCounts()})
}

type savedQuery struct {
	Resolve bool `form:"resolve"`
}

// Saved is the GET /saved endpoint
func (h *JobHandler) Saved(c *gin.Context) {
	var q savedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, errBadRequest("invalid_query", err.Error()))
		return
	}

	ids := h.svc.SavedJobs()
	body := gin.H{"ids": ids}
	if q.Resolve {
		jobs, missing := job.Resolve(c.Request.Context(), h.svc, ids)
		body["jobs"] = jobs
		body["missing"] = missing
	}
	c.JSON(http.StatusOK, body)
}

// SaveJob is the PUT /saved/:id endpoint
func (h *JobHandler) SaveJob(c *gin.Context) {
	id := c.Param("id")
	changed := h.svc.SaveJob(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"id": id, "changed": changed, "saved": h.svc.SavedJobs()})
}

// UnsaveJob is the DELETE /saved/:id endpoint
func (h *JobHandler) UnsaveJob(c *gin.Context) {
	id := c.Param("id")
	changed := h.svc.RemoveSavedJob(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"id": id, "changed": changed, "saved": h.svc.SavedJobs()})
}

// Health is the GET /health endpoint
func (h *JobHandler) Health(c *gin.Context) {
	snap := h.svc.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"loading":    snap.Loading,
		"error":      snap.Error,
		"fetched_at": snap.FetchedAt,
	})
}
