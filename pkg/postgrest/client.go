package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"
)

const restPath = "rest/v1"

// Client queries a PostgREST endpoint such as Supabase's REST API
type Client struct {
	baseURL    string
	apiKey     string
	schema     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient instantiates a PostgREST client
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("postgrest: url and api key are required")
	}

	u, err := url.Parse(strings.TrimSuffix(cfg.URL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("postgrest: invalid url %q", cfg.URL)
	}
	u.Path = path.Join(u.Path, restPath)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    u.String(),
		apiKey:     cfg.APIKey,
		schema:     cfg.Schema,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// Select runs q against table
func (c *Client) Select(ctx context.Context, table string, q Query) (Result, error) {
	if c == nil {
		return Result{}, fmt.Errorf("postgrest: client is nil")
	}
	if table == "" {
		return Result{}, fmt.Errorf("postgrest: table is required")
	}

	u, err := c.buildSelectURL(table, q)
	if err != nil {
		return Result{}, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{}, fmt.Errorf("postgrest: rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("postgrest: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.schema != "" {
		req.Header.Set("Accept-Profile", c.schema)
	}
	if q.CountExact {
		req.Header.Set("Prefer", "count=exact")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("postgrest: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// an offset past the last row is answered with 416 and "*/N"
	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable {
		if total, err := ParseContentRangeTotal(resp.Header.Get("Content-Range")); err == nil && total >= 0 {
			return Result{Rows: []map[string]any{}, Total: total}, nil
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, decodeStatusError(resp)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return Result{}, fmt.Errorf("postgrest: decode response: %w", err)
	}

	total := -1
	if q.CountExact {
		total, err = ParseContentRangeTotal(resp.Header.Get("Content-Range"))
		if err != nil {
			return Result{}, err
		}
	}

	return Result{Rows: rows, Total: total}, nil
}

func (c *Client) buildSelectURL(table string, q Query) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("postgrest: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, table)

	cols := q.Columns
	if cols == "" {
		cols = "*"
	}

	values := url.Values{}
	values.Set("select", cols)

	if len(q.Order) > 0 {
		terms := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			terms = append(terms, o.Column+"."+dir)
		}
		values.Set("order", strings.Join(terms, ","))
	}

	// stable parameter order keeps URLs comparable in logs and tests
	cols2 := make([]string, 0, len(q.Eq))
	for col := range q.Eq {
		cols2 = append(cols2, col)
	}
	sort.Strings(cols2)
	for _, col := range cols2 {
		values.Set(col, "eq."+q.Eq[col])
	}

	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

// ParseContentRangeTotal extracts the total from a Content-Range header such
// as "0-49/150" or "*/0"
func ParseContentRangeTotal(h string) (int, error) {
	h = strings.TrimSpace(h)
	i := strings.LastIndexByte(h, '/')
	if i < 0 {
		return 0, fmt.Errorf("postgrest: malformed Content-Range %q", h)
	}
	tot := h[i+1:]
	if tot == "*" {
		return -1, nil
	}
	n, err := strconv.Atoi(tot)
	if err != nil {
		return 0, fmt.Errorf("postgrest: malformed Content-Range %q", h)
	}
	return n, nil
}

func decodeStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	e := &StatusError{Status: resp.StatusCode}
	if err := json.Unmarshal(body, e); err != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(bytes.TrimSpace(body)))
	}
	return e
}
