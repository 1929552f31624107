package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/export"
)

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	JobIDs  []string `json:"job_ids,omitempty" jsonschema:"Jobs to export; defaults to the saved jobs"`
	Replace bool     `json:"replace,omitempty" jsonschema:"Clear the tab and write a header before the rows"`
	Sheet   struct {
		SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
		Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write to"`
	} `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	export.Result
	Missing []string `json:"missing,omitempty"`
}

type sheetsHandler struct {
	svc      job.Service
	exporter *export.SheetsExporter
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(svc job.Service, exporter *export.SheetsExporter) Option {
	return func(reg *registry) {
		h := &sheetsHandler{svc: svc, exporter: exporter}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export saved (or given) jobs to a Google Sheets tab",
		}, h.handle)
	}
}

func (h *sheetsHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if !h.exporter.Configured() {
		return errorResult("sheets_export unavailable: GOOGLE_SHEETS_CREDENTIALS_PATH not set"), nil, nil
	}
	if params == nil || params.Sheet.SpreadsheetID == "" {
		return errorResult("sheets_export requires sheet.spreadsheet_id"), nil, nil
	}

	ids := params.JobIDs
	if len(ids) == 0 {
		ids = h.svc.SavedJobs()
	}
	jobs, missing := job.Resolve(ctx, h.svc, ids)

	res, err := h.exporter.Export(ctx, export.Request{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		Replace:       params.Replace,
		Jobs:          jobs,
	})
	if errors.Is(err, export.ErrNotConfigured) {
		return errorResult("sheets_export unavailable: %v", err), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	out := SheetsExportResult{Result: res, Missing: missing}
	return textResult(fmt.Sprintf("[sheets_export] mode=%s rows=%d spreadsheet_id=%q tab=%q", res.Mode, res.WrittenRows, res.SpreadsheetID, res.Tab)), out, nil
}
