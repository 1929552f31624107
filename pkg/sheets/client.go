package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client writes value ranges to Google Sheets
type Client struct {
	service *sheets.Service
}

// Config selects service-account credentials; the path wins when both are set
type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
	// Endpoint overrides the API endpoint, mainly for tests
	Endpoint string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{service: service}, nil
}

// TabRange returns the A1 range covering every row of tab
func TabRange(tab string) string {
	if tab == "" {
		return "A:Z"
	}
	return quoteTab(tab) + "!A:Z"
}

// TabStart returns the A1 cell at the top-left of tab
func TabStart(tab string) string {
	if tab == "" {
		return "A1"
	}
	return quoteTab(tab) + "!A1"
}

func quoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

// AppendValues appends rows after the last non-empty row of rng
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int64, error) {
	if c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: append %s: %w", rng, err)
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return resp.Updates.UpdatedRows, nil
}

// ReplaceValues clears rng and writes values starting at start
func (c *Client) ReplaceValues(ctx context.Context, spreadsheetID, rng, start string, values [][]any) (int64, error) {
	if c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return 0, fmt.Errorf("sheets: clear %s: %w", rng, err)
	}

	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, start, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: update %s: %w", start, err)
	}
	return resp.UpdatedRows, nil
}
