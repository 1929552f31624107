// Package jobtest provides in-memory job sources for tests.
package jobtest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// Source is a job.Source over a fixed slice of jobs
type Source struct {
	SourceName string
	// Prefix, when set, makes Owns match ids with this prefix only
	Prefix string

	mu       sync.Mutex
	jobs     []domain.Job
	total    int
	fetchErr error
	findErr  error
	// block, when non-nil, holds FetchPage until closed or ctx is done
	block  chan struct{}
	ranges []job.Range
}

var _ job.Source = (*Source)(nil)

// NewSource returns a source whose pages are jobs and whose total is total
func NewSource(name string, total int, jobs ...domain.Job) *Source {
	return &Source{SourceName: name, jobs: jobs, total: total}
}

func (s *Source) Name() string { return s.SourceName }

func (s *Source) Owns(id string) bool {
	if s.Prefix == "" {
		return true
	}
	return strings.HasPrefix(id, s.Prefix)
}

// SetJobs replaces the page contents
func (s *Source) SetJobs(total int, jobs ...domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs, s.total = jobs, total
}

// FailFetch makes FetchPage return err; nil restores success
func (s *Source) FailFetch(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

// FailFind makes FindByID return err; nil restores success
func (s *Source) FailFind(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findErr = err
}

// Block makes the next fetches wait until the returned func is called
func (s *Source) Block() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.block = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.block == ch {
				s.block = nil
			}
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Ranges returns every range FetchPage was called with
func (s *Source) Ranges() []job.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]job.Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

func (s *Source) FetchPage(ctx context.Context, rng job.Range) ([]domain.Job, int, error) {
	s.mu.Lock()
	s.ranges = append(s.ranges, rng)
	block := s.block
	jobs, total, err := s.jobs, s.total, s.fetchErr
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Job, len(jobs))
	copy(out, jobs)
	return out, total, nil
}

func (s *Source) FindByID(_ context.Context, id string) (domain.Job, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return domain.Job{}, false, s.findErr
	}
	for _, j := range s.jobs {
		if j.ID == id {
			return j, true, nil
		}
	}
	return domain.Job{}, false, nil
}

// Bookmarks is an in-memory job.Bookmarks
type Bookmarks struct {
	mu  sync.Mutex
	ids []string
}

var _ job.Bookmarks = (*Bookmarks)(nil)

func (b *Bookmarks) Save(_ context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range b.ids {
		if v == id {
			return false
		}
	}
	b.ids = append(b.ids, id)
	return true
}

func (b *Bookmarks) Remove(_ context.Context, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, v := range b.ids {
		if v == id {
			b.ids = append(b.ids[:i:i], b.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Bookmarks) Contains(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range b.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (b *Bookmarks) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.ids))
	copy(out, b.ids)
	return out
}

// Job returns a minimal job created at the given day of January 2024
func Job(id string, day int) domain.Job {
	return domain.Job{
		ID:              id,
		Title:           "Job " + id,
		Company:         "Acme",
		Location:        "Remote",
		JobType:         domain.JobTypeFullTime,
		ExperienceLevel: domain.ExperienceMid,
		Category:        domain.CategoryTechnology,
		CreatedAt:       time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
	}
}
