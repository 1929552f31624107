package job

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/honeycarbs/jobboard/internal/domain"
)

func TestMatches(t *testing.T) {
	j := domain.Job{
		Title:           "Senior Go Engineer",
		Company:         "Acme",
		Description:     "Build distributed systems",
		Category:        domain.CategoryTechnology,
		JobType:         domain.JobTypeContract,
		ExperienceLevel: domain.ExperienceSenior,
	}

	testCases := []struct {
		name   string
		filter domain.Filters
		want   bool
	}{
		{"no filters", domain.Filters{}, true},
		{"title case-insensitive", domain.Filters{Search: "go ENGINEER"}, true},
		{"company", domain.Filters{Search: "acm"}, true},
		{"description", domain.Filters{Search: "distributed"}, true},
		{"search misses", domain.Filters{Search: "rust"}, false},
		{"category match", domain.Filters{Category: domain.CategoryTechnology}, true},
		{"category mismatch", domain.Filters{Category: domain.CategoryDesign}, false},
		{"job type mismatch", domain.Filters{JobType: domain.JobTypeFullTime}, false},
		{"experience match", domain.Filters{ExperienceLevel: domain.ExperienceSenior}, true},
		{"remote required", domain.Filters{Remote: true}, false},
		{"all combined", domain.Filters{Search: "engineer", Category: domain.CategoryTechnology, JobType: domain.JobTypeContract, ExperienceLevel: domain.ExperienceSenior}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(j, tc.filter); got != tc.want {
				t.Fatalf("Matches(%+v) = %t, want %t", tc.filter, got, tc.want)
			}
		})
	}
}

func TestFilterRemote(t *testing.T) {
	jobs := []domain.Job{
		{ID: "a", Remote: true},
		{ID: "b", Remote: false},
	}

	got := Filter(jobs, domain.Filters{Remote: true})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only remote job a, got %+v", got)
	}

	if got := Filter(jobs, domain.Filters{}); len(got) != 2 {
		t.Fatalf("remote=false must not exclude anything, got %d", len(got))
	}
}

func TestCountByCategory(t *testing.T) {
	jobs := []domain.Job{
		{Category: domain.CategoryDesign},
		{Category: "Zoology"},
		{Category: domain.CategoryTechnology},
		{Category: domain.CategoryDesign},
		{Category: "Astronomy"},
	}

	want := []domain.CategoryCount{
		{Category: domain.CategoryTechnology, Count: 1},
		{Category: domain.CategoryDesign, Count: 2},
		{Category: "Astronomy", Count: 1},
		{Category: "Zoology", Count: 1},
	}
	if diff := cmp.Diff(want, CountByCategory(jobs)); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}
