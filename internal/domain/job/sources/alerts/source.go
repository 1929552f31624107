package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	jobdomain "github.com/honeycarbs/jobboard/internal/domain/job"
)

const (
	// Table holds job alerts in their own loosely typed schema
	Table = "job_alerts"

	// IDPrefix namespaces alert ids away from listing ids
	IDPrefix = "alert-"
)

// Placeholder values for fields alerts do not carry
const (
	DefaultTitle    = "Untitled Position"
	DefaultLocation = "Location not specified"
	DefaultCompany  = "Company Name"
)

// row is the job_alerts shape; the quoted columns hold whatever the alert
// feed wrote, so they stay untyped until mapping
type row struct {
	ID          any       `mapstructure:"id"`
	CreatedAt   time.Time `mapstructure:"created_at"`
	Title       any       `mapstructure:"Job Title"`
	Location    any       `mapstructure:"Job Location"`
	Description any       `mapstructure:"Job Description"`
	Link        any       `mapstructure:"Job Link"`
}

// Source implements job.Source over the job_alerts table
type Source struct {
	store jobdomain.Store
}

// NewSource builds the alerts source
func NewSource(store jobdomain.Store) (*Source, error) {
	if store == nil {
		return nil, fmt.Errorf("alerts source: store is required")
	}
	return &Source{store: store}, nil
}

// Name returns source identifier
func (s *Source) Name() string {
	return "alerts"
}

// Owns reports whether id carries the alert namespace
func (s *Source) Owns(id string) bool {
	return strings.HasPrefix(id, IDPrefix)
}

// FetchPage loads a window of alerts mapped into the unified shape
func (s *Source) FetchPage(ctx context.Context, rng jobdomain.Range) ([]domain.Job, int, error) {
	page, err := s.store.SelectRange(ctx, Table, rng)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Job, 0, len(page.Rows))
	for _, r := range page.Rows {
		j, err := decode(r)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	return out, page.Total, nil
}

// FindByID loads one alert by its namespaced id
func (s *Source) FindByID(ctx context.Context, id string) (domain.Job, bool, error) {
	r, ok, err := s.store.SelectByID(ctx, Table, strings.TrimPrefix(id, IDPrefix))
	if err != nil || !ok {
		return domain.Job{}, false, err
	}

	j, err := decode(r)
	if err != nil {
		return domain.Job{}, false, err
	}
	return j, true, nil
}

func decode(r jobdomain.Row) (domain.Job, error) {
	var a row
	if err := jobdomain.DecodeRow(r, &a, "mapstructure"); err != nil {
		return domain.Job{}, fmt.Errorf("alerts: decode row %v: %w", r["id"], err)
	}
	return toJob(a), nil
}

// toJob builds the unified job for an alert, filling fields the alert schema
// lacks with fixed placeholders
func toJob(a row) domain.Job {
	j := domain.Job{
		ID:              IDPrefix + jobdomain.Stringify(a.ID),
		Title:           orDefault(jobdomain.Stringify(a.Title), DefaultTitle),
		Company:         DefaultCompany,
		Location:        orDefault(jobdomain.Stringify(a.Location), DefaultLocation),
		Description:     jobdomain.Stringify(a.Description),
		JobType:         domain.JobTypeFullTime,
		ExperienceLevel: domain.ExperienceNotSpecified,
		Category:        domain.CategoryTechnology,
		CreatedAt:       a.CreatedAt,
	}
	if l := jobdomain.Stringify(a.Link); l != "" {
		j.ApplicationURL = &l
	}
	return j
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var _ jobdomain.Source = (*Source)(nil)
