package job

import (
	"strings"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Matches reports whether j passes every active filter
func Matches(j domain.Job, f domain.Filters) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(j.Title), q) &&
			!strings.Contains(strings.ToLower(j.Company), q) &&
			!strings.Contains(strings.ToLower(j.Description), q) {
			return false
		}
	}
	if f.Category != "" && j.Category != f.Category {
		return false
	}
	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}
	if f.ExperienceLevel != "" && j.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	if f.Remote && !j.Remote {
		return false
	}
	return true
}

// Filter returns the jobs matching f, preserving order
func Filter(jobs []domain.Job, f domain.Filters) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if Matches(j, f) {
			out = append(out, j)
		}
	}
	return out
}

// CountByCategory tallies jobs per category in display order, unknown
// categories last
func CountByCategory(jobs []domain.Job) []domain.CategoryCount {
	counts := make(map[domain.Category]int)
	for _, j := range jobs {
		counts[j.Category]++
	}

	out := make([]domain.CategoryCount, 0, len(counts))
	for _, c := range domain.Categories {
		if n, ok := counts[c]; ok {
			out = append(out, domain.CategoryCount{Category: c, Count: n})
			delete(counts, c)
		}
	}
	extra := make([]domain.CategoryCount, 0, len(counts))
	for c, n := range counts {
		extra = append(extra, domain.CategoryCount{Category: c, Count: n})
	}
	sortCategoryCounts(extra)
	return append(out, extra...)
}
