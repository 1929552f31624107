package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// ListJobsParams defines the arguments for the list_jobs tool
type ListJobsParams struct {
	Page    int  `json:"page,omitempty" jsonschema:"1-based page to load; omit to stay on the current page"`
	Refresh bool `json:"refresh,omitempty" jsonschema:"Refetch the current page even if it is already loaded"`
}

// JobsPage is the filtered view of the loaded page
type JobsPage struct {
	Jobs       []domain.Job      `json:"jobs"`
	Filters    domain.Filters    `json:"filters"`
	Pagination domain.Pagination `json:"pagination"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
}

// FeaturedJobsParams defines the arguments for the featured_jobs tool
type FeaturedJobsParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of featured jobs; 0 returns all"`
}

// FeaturedJobs lists featured jobs on the loaded page
type FeaturedJobs struct {
	Jobs []domain.Job `json:"jobs"`
}

// GetJobParams defines the arguments for the get_job tool
type GetJobParams struct {
	ID string `json:"id" jsonschema:"Job id; alert ids carry the alert- prefix"`
}

// GetJobResult is the lookup outcome
type GetJobResult struct {
	Found bool        `json:"found"`
	Job   *domain.Job `json:"job,omitempty"`
	Saved bool        `json:"saved"`
}

// SetFiltersParams defines the arguments for the set_filters tool
type SetFiltersParams struct {
	Search          string `json:"search,omitempty" jsonschema:"Case-insensitive text matched against title, company and description"`
	Category        string `json:"category,omitempty" jsonschema:"Exact category, e.g. Technology"`
	JobType         string `json:"job_type,omitempty" jsonschema:"Exact job type, e.g. Full-time"`
	ExperienceLevel string `json:"experience_level,omitempty" jsonschema:"Exact experience level, e.g. Senior"`
	Remote          bool   `json:"remote,omitempty" jsonschema:"Only remote jobs"`
}

// Filters converts params into domain filters
func (p *SetFiltersParams) Filters() domain.Filters {
	if p == nil {
		return domain.Filters{}
	}
	return domain.Filters{
		Search:          p.Search,
		Category:        domain.Category(p.Category),
		JobType:         domain.JobType(p.JobType),
		ExperienceLevel: domain.ExperienceLevel(p.ExperienceLevel),
		Remote:          p.Remote,
	}
}

// ClearFiltersParams is empty; clear_filters takes no arguments
type ClearFiltersParams struct{}

// CategoryCountsParams is empty; category_counts takes no arguments
type CategoryCountsParams struct{}

// CategoryCounts lists loaded job counts per category
type CategoryCounts struct {
	Categories []domain.CategoryCount `json:"categories"`
}

type jobsHandler struct {
	svc job.Service
	reg *registry
}

// WithJobTools registers list_jobs, featured_jobs, get_job, set_filters,
// clear_filters and category_counts
func WithJobTools(svc job.Service) Option {
	return func(reg *registry) {
		h := &jobsHandler{svc: svc, reg: reg}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "list_jobs",
			Description: "List jobs on a page after applying the active filters, with pagination",
		}, h.listJobs)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "featured_jobs",
			Description: "List featured jobs from the loaded page",
		}, h.featuredJobs)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "get_job",
			Description: "Look up a single job by id",
		}, h.getJob)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "set_filters",
			Description: "Replace the active filters and reload the current page",
		}, h.setFilters)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "clear_filters",
			Description: "Reset every filter and reload the current page",
		}, h.clearFilters)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "category_counts",
			Description: "Count loaded jobs per category",
		}, h.categoryCounts)
	}
}

func (h *jobsHandler) listJobs(ctx context.Context, _ *sdkmcp.CallToolRequest, params *ListJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &ListJobsParams{}
	}

	var err error
	switch {
	case params.Page > 0 && params.Page != h.svc.Page():
		err = h.svc.SetPage(ctx, params.Page)
	case params.Refresh || h.svc.Snapshot().FetchedAt.IsZero():
		err = h.svc.Fetch(ctx)
	}
	if errors.Is(err, job.ErrInvalidPage) {
		return errorResult("page %d is out of range", params.Page), nil, nil
	}
	fetchFailed := err != nil && !errors.Is(err, job.ErrSuperseded)
	if fetchFailed {
		h.reg.logger.Warn("list_jobs fetch failed", "page", params.Page, "err", err)
	}

	page := pageOf(h.svc.Snapshot())
	if params.Page > 0 && page.Pagination.Page != params.Page {
		return errorResult("page %d was replaced by page %d before it loaded", params.Page, page.Pagination.Page), page, nil
	}
	// a stale lookup error does not make the listing itself a failure
	if fetchFailed || page.Error == job.FetchErrorMessage {
		return errorResult("%s", job.FetchErrorMessage), page, nil
	}
	return textResult(fmt.Sprintf("page %d of %d: %d job(s) match", page.Pagination.Page, page.Pagination.TotalPages, len(page.Jobs))), page, nil
}

func (h *jobsHandler) featuredJobs(_ context.Context, _ *sdkmcp.CallToolRequest, params *FeaturedJobsParams) (*sdkmcp.CallToolResult, any, error) {
	limit := 0
	if params != nil {
		limit = params.Limit
	}
	jobs := h.svc.Featured(limit)
	return textResult(fmt.Sprintf("%d featured job(s)", len(jobs))), FeaturedJobs{Jobs: jobs}, nil
}

func (h *jobsHandler) getJob(ctx context.Context, _ *sdkmcp.CallToolRequest, params *GetJobParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.ID == "" {
		return errorResult("get_job requires an id"), nil, nil
	}

	j, ok, err := h.svc.FindJob(ctx, params.ID)
	if err != nil {
		return errorResult("%s", job.LookupErrorMessage), GetJobResult{}, nil
	}
	if !ok {
		return textResult(fmt.Sprintf("job %s not found", params.ID)), GetJobResult{}, nil
	}

	return textResult(fmt.Sprintf("%s at %s", j.Title, j.Company)), GetJobResult{
		Found: true,
		Job:   &j,
		Saved: h.svc.IsSaved(j.ID),
	}, nil
}

func (h *jobsHandler) setFilters(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SetFiltersParams) (*sdkmcp.CallToolResult, any, error) {
	err := h.svc.SetFilters(ctx, params.Filters())
	if errors.Is(err, job.ErrInvalidFilter) {
		return errorResult("%v", err), nil, nil
	}
	if err != nil && !errors.Is(err, job.ErrSuperseded) {
		h.reg.logger.Warn("set_filters fetch failed", "err", err)
	}

	page := pageOf(h.svc.Snapshot())
	return textResult(fmt.Sprintf("%d job(s) match", len(page.Jobs))), page, nil
}

func (h *jobsHandler) clearFilters(ctx context.Context, _ *sdkmcp.CallToolRequest, _ *ClearFiltersParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.ClearFilters(ctx); err != nil && !errors.Is(err, job.ErrSuperseded) {
		h.reg.logger.Warn("clear_filters fetch failed", "err", err)
	}

	page := pageOf(h.svc.Snapshot())
	return textResult(fmt.Sprintf("filters cleared: %d job(s)", len(page.Jobs))), page, nil
}

func (h *jobsHandler) categoryCounts(_ context.Context, _ *sdkmcp.CallToolRequest, _ *CategoryCountsParams) (*sdkmcp.CallToolResult, any, error) {
	counts := h.svc.CategoryCounts()
	return textResult(fmt.Sprintf("%d categor(ies)", len(counts))), CategoryCounts{Categories: counts}, nil
}

func pageOf(s domain.Snapshot) JobsPage {
	return JobsPage{
		Jobs:       s.Filtered,
		Filters:    s.Filters,
		Pagination: s.Pagination,
		Loading:    s.Loading,
		Error:      s.Error,
	}
}
