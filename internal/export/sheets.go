package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
	"github.com/honeycarbs/jobboard/pkg/sheets"
)

// ErrNotConfigured is returned when no spreadsheet credentials were provided
var ErrNotConfigured = errors.New("export: sheets client not configured")

// Header is the first row written in replace mode
var Header = []any{"Title", "Company", "Location", "Application URL", "Job Type", "Created At"}

// Writer is the subset of the sheets client the exporter needs
type Writer interface {
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int64, error)
	ReplaceValues(ctx context.Context, spreadsheetID, rng, start string, values [][]any) (int64, error)
}

var _ Writer = (*sheets.Client)(nil)

// Request describes one export
type Request struct {
	SpreadsheetID string
	Tab           string
	// Replace clears the tab and writes a header before the rows
	Replace bool
	Jobs    []domain.Job
}

// Result summarizes a finished export
type Result struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab,omitempty"`
	WrittenRows   int64     `json:"written_rows"`
	Mode          string    `json:"mode"`
	CompletedAt   time.Time `json:"completed_at"`
}

// SheetsExporter writes jobs to a spreadsheet tab
type SheetsExporter struct {
	writer Writer
	logger *logging.Logger
	clock  func() time.Time
}

// NewSheetsExporter creates an exporter; a nil writer yields ErrNotConfigured on export
func NewSheetsExporter(w Writer, logger *logging.Logger) *SheetsExporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SheetsExporter{writer: w, logger: logger, clock: time.Now}
}

// Configured reports whether exports can be written
func (e *SheetsExporter) Configured() bool {
	return e != nil && e.writer != nil
}

func (e *SheetsExporter) Export(ctx context.Context, req Request) (Result, error) {
	if !e.Configured() {
		return Result{}, ErrNotConfigured
	}
	if req.SpreadsheetID == "" {
		return Result{}, fmt.Errorf("export: spreadsheet id is required")
	}

	res := Result{SpreadsheetID: req.SpreadsheetID, Tab: req.Tab, Mode: "append"}
	rows := Rows(req.Jobs)

	var (
		n   int64
		err error
	)
	if req.Replace {
		res.Mode = "replace"
		n, err = e.writer.ReplaceValues(ctx, req.SpreadsheetID, sheets.TabRange(req.Tab), sheets.TabStart(req.Tab), append([][]any{Header}, rows...))
	} else {
		if len(rows) == 0 {
			res.Mode = "noop"
			res.CompletedAt = e.clock().UTC()
			return res, nil
		}
		n, err = e.writer.AppendValues(ctx, req.SpreadsheetID, sheets.TabRange(req.Tab), rows)
	}
	if err != nil {
		e.logger.Error("sheets export failed", "spreadsheet_id", req.SpreadsheetID, "tab", req.Tab, "err", err)
		return res, err
	}

	res.WrittenRows = n
	res.CompletedAt = e.clock().UTC()
	e.logger.Info("sheets export complete", "spreadsheet_id", req.SpreadsheetID, "tab", req.Tab, "mode", res.Mode, "rows", n)
	return res, nil
}

// Rows converts jobs into sheet rows in Header column order
func Rows(jobs []domain.Job) [][]any {
	out := make([][]any, 0, len(jobs))
	for _, j := range jobs {
		url := ""
		if j.ApplicationURL != nil {
			url = *j.ApplicationURL
		}
		out = append(out, []any{
			j.Title,
			j.Company,
			j.Location,
			url,
			string(j.JobType),
			j.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
