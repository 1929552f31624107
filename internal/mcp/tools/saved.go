package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// SaveJobParams defines the arguments for the save_job and unsave_job tools
type SaveJobParams struct {
	ID string `json:"id" jsonschema:"Job id to save or remove"`
}

// SaveJobResult reports whether the saved set changed
type SaveJobResult struct {
	ID      string   `json:"id"`
	Changed bool     `json:"changed"`
	Saved   []string `json:"saved"`
}

// SavedJobsParams defines the arguments for the saved_jobs tool
type SavedJobsParams struct {
	Resolve bool `json:"resolve,omitempty" jsonschema:"Look up each saved id and include the job"`
}

// SavedJobs lists saved ids in save order, with resolved jobs when asked
type SavedJobs struct {
	IDs     []string     `json:"ids"`
	Jobs    []domain.Job `json:"jobs,omitempty"`
	Missing []string     `json:"missing,omitempty"`
}

type savedHandler struct {
	svc job.Service
}

// WithSavedTools registers save_job, unsave_job and saved_jobs
func WithSavedTools(svc job.Service) Option {
	return func(reg *registry) {
		h := &savedHandler{svc: svc}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "save_job",
			Description: "Bookmark a job id; saving an already saved id is a no-op",
		}, h.save)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "unsave_job",
			Description: "Remove a bookmarked job id; removing an unsaved id is a no-op",
		}, h.unsave)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "saved_jobs",
			Description: "List bookmarked job ids, optionally resolving each to its job",
		}, h.list)
	}
}

func (h *savedHandler) save(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SaveJobParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.ID == "" {
		return errorResult("save_job requires an id"), nil, nil
	}
	changed := h.svc.SaveJob(ctx, params.ID)
	res := SaveJobResult{ID: params.ID, Changed: changed, Saved: h.svc.SavedJobs()}
	return textResult(fmt.Sprintf("saved %s (%d saved)", params.ID, len(res.Saved))), res, nil
}

func (h *savedHandler) unsave(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SaveJobParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.ID == "" {
		return errorResult("unsave_job requires an id"), nil, nil
	}
	changed := h.svc.RemoveSavedJob(ctx, params.ID)
	res := SaveJobResult{ID: params.ID, Changed: changed, Saved: h.svc.SavedJobs()}
	return textResult(fmt.Sprintf("removed %s (%d saved)", params.ID, len(res.Saved))), res, nil
}

func (h *savedHandler) list(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SavedJobsParams) (*sdkmcp.CallToolResult, any, error) {
	ids := h.svc.SavedJobs()
	res := SavedJobs{IDs: ids}

	if params != nil && params.Resolve {
		res.Jobs, res.Missing = job.Resolve(ctx, h.svc, ids)
	}
	return textResult(fmt.Sprintf("%d saved job(s)", len(ids))), res, nil
}
