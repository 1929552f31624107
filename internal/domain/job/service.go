package job

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

const (
	// DefaultPageSize is the number of rows requested from each source per page
	DefaultPageSize = 50

	FetchErrorMessage  = "Failed to fetch jobs. Please try again later."
	LookupErrorMessage = "Failed to fetch job details. Please try again later."
)

var (
	ErrInvalidPage   = errors.New("job: page out of range")
	ErrInvalidFilter = errors.New("job: invalid filter")
	// ErrSuperseded is returned by a fetch whose result was discarded because a
	// newer fetch started while it was in flight
	ErrSuperseded = errors.New("job: fetch superseded")
)

// Bookmarks is the saved-jobs set the service mutates
type Bookmarks interface {
	Save(ctx context.Context, id string) bool
	Remove(ctx context.Context, id string) bool
	Contains(id string) bool
	IDs() []string
}

// Service is the single source of truth for listings, pagination and bookmarks
type Service interface {
	// Fetch loads the current page from both sources
	Fetch(ctx context.Context) error

	Jobs() []domain.Job
	Featured(limit int) []domain.Job
	Filtered() []domain.Job
	CategoryCounts() []domain.CategoryCount
	Loading() bool
	Error() string
	Snapshot() domain.Snapshot

	Filters() domain.Filters
	SetFilters(ctx context.Context, f domain.Filters) error
	ClearFilters(ctx context.Context) error

	Page() int
	SetPage(ctx context.Context, page int) error
	Pagination() domain.Pagination

	GetJobByID(ctx context.Context, id string) (domain.Job, bool)
	// FindJob is GetJobByID that also returns the lookup error
	FindJob(ctx context.Context, id string) (domain.Job, bool, error)

	SaveJob(ctx context.Context, id string) bool
	RemoveSavedJob(ctx context.Context, id string) bool
	SavedJobs() []string
	IsSaved(id string) bool
}

// Sources pairs the primary listings source with the secondary alerts source
type Sources struct {
	Primary   Source
	Secondary Source
}

// PageSize is the fixed number of rows per source per page
type PageSize int

// Option configures Service
type Option func(*config)

type config struct {
	sources   Sources
	bookmarks Bookmarks
	pageSize  int
	logger    *logging.Logger
	clock     func() time.Time
}

// WithSources sets the primary and secondary sources
func WithSources(primary, secondary Source) Option {
	return func(c *config) {
		c.sources = Sources{Primary: primary, Secondary: secondary}
	}
}

// WithBookmarks sets the saved-jobs set
func WithBookmarks(b Bookmarks) Option {
	return func(c *config) {
		c.bookmarks = b
	}
}

// WithPageSize overrides DefaultPageSize
func WithPageSize(size int) Option {
	return func(c *config) {
		c.pageSize = size
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		pageSize: DefaultPageSize,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return newService(cfg)
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(sources Sources, bookmarks Bookmarks, size PageSize, logger *logging.Logger) (Service, error) {
	return newService(&config{
		sources:   sources,
		bookmarks: bookmarks,
		pageSize:  int(size),
		logger:    logger,
		clock:     time.Now,
	})
}

func newService(cfg *config) (*service, error) {
	if cfg.sources.Primary == nil || cfg.sources.Secondary == nil {
		return nil, fmt.Errorf("job.Service: primary and secondary sources are required")
	}
	if cfg.bookmarks == nil {
		return nil, fmt.Errorf("job.Service: bookmarks are required")
	}
	if cfg.pageSize <= 0 {
		return nil, fmt.Errorf("job.Service: page size must be positive, got %d", cfg.pageSize)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if cfg.clock == nil {
		cfg.clock = time.Now
	}

	return &service{
		primary:   cfg.sources.Primary,
		secondary: cfg.sources.Secondary,
		bookmarks: cfg.bookmarks,
		pageSize:  cfg.pageSize,
		logger:    cfg.logger,
		clock:     cfg.clock,
		page:      1,
	}, nil
}

type service struct {
	primary   Source
	secondary Source
	bookmarks Bookmarks
	pageSize  int
	logger    *logging.Logger
	clock     func() time.Time

	mu        sync.RWMutex
	jobs      []domain.Job
	featured  []domain.Job
	total     int
	page      int
	filters   domain.Filters
	loading   bool
	errMsg    string
	fetchedAt time.Time

	// gen identifies the newest fetch; cancel aborts it
	gen    uint64
	cancel context.CancelFunc
}

// Fetch queries both sources for the current page. A fetch started while
// another is in flight cancels the older one, whose result is discarded.
func (s *service) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true
	page := s.page
	s.mu.Unlock()
	defer cancel()

	rng := PageRange(page, s.pageSize)
	log := s.logger.With("fetch_id", uuid.NewString(), "page", page, "range", rng.String())
	log.Debug("fetching jobs")

	var (
		primaryJobs, secondaryJobs   []domain.Job
		primaryTotal, secondaryTotal int
	)

	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		jobs, total, err := s.primary.FetchPage(gctx, rng)
		if err != nil {
			return fmt.Errorf("%s: %w", s.primary.Name(), err)
		}
		primaryJobs, primaryTotal = jobs, total
		return nil
	})
	g.Go(func() error {
		jobs, total, err := s.secondary.FetchPage(gctx, rng)
		if err != nil {
			return fmt.Errorf("%s: %w", s.secondary.Name(), err)
		}
		secondaryJobs, secondaryTotal = jobs, total
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		log.Debug("discarding superseded fetch")
		return ErrSuperseded
	}
	s.loading = false
	s.cancel = nil

	if err != nil {
		s.errMsg = FetchErrorMessage
		log.Error("failed to fetch jobs", "err", err)
		return err
	}

	merged := mergeJobs(primaryJobs, secondaryJobs)
	if len(merged) != len(primaryJobs)+len(secondaryJobs) {
		log.Warn("dropped jobs with duplicate ids", "dropped", len(primaryJobs)+len(secondaryJobs)-len(merged))
	}

	s.jobs = merged
	s.featured = featuredOf(merged)
	s.total = primaryTotal + secondaryTotal
	s.errMsg = ""
	s.fetchedAt = s.clock()

	log.Info("jobs fetched",
		"jobs", len(merged),
		"featured", len(s.featured),
		"total", s.total,
	)
	return nil
}

// mergeJobs concatenates primary then secondary, keeps the first job for each
// id, and stable-sorts newest first
func mergeJobs(primary, secondary []domain.Job) []domain.Job {
	all := make([]domain.Job, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, cap(all))
	for _, batch := range [][]domain.Job{primary, secondary} {
		for _, j := range batch {
			if _, dup := seen[j.ID]; dup {
				continue
			}
			seen[j.ID] = struct{}{}
			all = append(all, j)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func featuredOf(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0)
	for _, j := range jobs {
		if j.Featured {
			out = append(out, j)
		}
	}
	return out
}

func (s *service) Jobs() []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJobs(s.jobs)
}

// Featured returns the featured subset, truncated to limit when limit > 0
func (s *service) Featured(limit int) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.featured
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return cloneJobs(out)
}

// Filtered applies the current filters to the loaded page; it never re-queries
func (s *service) Filtered() []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.jobs, s.filters)
}

func (s *service) CategoryCounts() []domain.CategoryCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountByCategory(s.jobs)
}

func (s *service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *service) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *service) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Snapshot{
		Jobs:       cloneJobs(s.jobs),
		Featured:   cloneJobs(s.featured),
		Filtered:   Filter(s.jobs, s.filters),
		Filters:    s.filters,
		Pagination: paginate(s.page, s.pageSize, s.total),
		Loading:    s.loading,
		Error:      s.errMsg,
		FetchedAt:  s.fetchedAt,
	}
}

func (s *service) Filters() domain.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the filter state and refetches the current page
func (s *service) SetFilters(ctx context.Context, f domain.Filters) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()

	return s.Fetch(ctx)
}

// ClearFilters resets every filter and refetches the current page
func (s *service) ClearFilters(ctx context.Context) error {
	return s.SetFilters(ctx, domain.Filters{})
}

func (s *service) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetPage moves to page and fetches it. Pages past the last known page are
// rejected once a total is known.
func (s *service) SetPage(ctx context.Context, page int) error {
	s.mu.Lock()
	pages := TotalPages(s.total, s.pageSize)
	if page < 1 || (pages > 0 && page > pages) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d of %d", ErrInvalidPage, page, pages)
	}
	s.page = page
	s.mu.Unlock()

	return s.Fetch(ctx)
}

func (s *service) Pagination() domain.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.page, s.pageSize, s.total)
}

// GetJobByID resolves id against the source that issued it. Lookup failures
// set the error message and are reported as not found.
func (s *service) GetJobByID(ctx context.Context, id string) (domain.Job, bool) {
	j, ok, _ := s.FindJob(ctx, id)
	return j, ok
}

func (s *service) FindJob(ctx context.Context, id string) (domain.Job, bool, error) {
	src := s.primary
	if s.secondary.Owns(id) {
		src = s.secondary
	}

	j, ok, err := src.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch job", "id", id, "source", src.Name(), "err", err)
		s.mu.Lock()
		s.errMsg = LookupErrorMessage
		s.mu.Unlock()
		return domain.Job{}, false, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return j, ok, nil
}

func (s *service) SaveJob(ctx context.Context, id string) bool {
	return s.bookmarks.Save(ctx, id)
}

func (s *service) RemoveSavedJob(ctx context.Context, id string) bool {
	return s.bookmarks.Remove(ctx, id)
}

func (s *service) SavedJobs() []string {
	return s.bookmarks.IDs()
}

func (s *service) IsSaved(id string) bool {
	return s.bookmarks.Contains(id)
}

func cloneJobs(in []domain.Job) []domain.Job {
	out := make([]domain.Job, len(in))
	copy(out, in)
	return out
}
