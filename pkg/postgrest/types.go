package postgrest

import (
	"errors"
	"fmt"
	"net/http"
)

// Config defines PostgREST client settings
type Config struct {
	// URL is the project URL, e.g. https://xyz.supabase.co
	URL string
	// APIKey is sent as both apikey and bearer token
	APIKey string
	// Schema selects a non-public schema through Accept-Profile
	Schema     string
	HTTPClient *http.Client
	// RequestsPerSecond caps outgoing requests; 0 disables limiting
	RequestsPerSecond float64
	Burst             int
}

// Order is one order-by term
type Order struct {
	Column     string
	Descending bool
}

// Query describes a select against one table
type Query struct {
	Columns string // defaults to *
	Order   []Order
	Eq      map[string]string
	Offset  int
	Limit   int // 0 means unbounded
	// CountExact asks the server for the exact total row count
	CountExact bool
}

// Result is the decoded rows plus the total when it was requested
type Result struct {
	Rows []map[string]any
	// Total is -1 when the server did not report a count
	Total int
}

// ErrStatus is wrapped by every non-2xx response error
var ErrStatus = errors.New("postgrest: unexpected status")

// StatusError carries the server response for a failed request
type StatusError struct {
	Status int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("postgrest: API error (%d)", e.Status)
	}
	return fmt.Sprintf("postgrest: API error (%d %s): %s", e.Status, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}
