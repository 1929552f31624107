package domain

import (
	"fmt"
	"time"
)

// JobType is the employment arrangement of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"
)

// ExperienceLevel is the seniority a posting asks for
type ExperienceLevel string

const (
	ExperienceEntry        ExperienceLevel = "Entry"
	ExperienceMid          ExperienceLevel = "Mid"
	ExperienceSenior       ExperienceLevel = "Senior"
	ExperienceLead         ExperienceLevel = "Lead"
	ExperienceExecutive    ExperienceLevel = "Executive"
	ExperienceNotSpecified ExperienceLevel = "Not specified"
)

// Category groups postings by industry
type Category string

const (
	CategoryTechnology      Category = "Technology"
	CategoryDesign          Category = "Design"
	CategoryMarketing       Category = "Marketing"
	CategorySales           Category = "Sales"
	CategoryCustomerService Category = "Customer Service"
	CategoryFinance         Category = "Finance"
	CategoryHealthcare      Category = "Healthcare"
	CategoryEducation       Category = "Education"
	CategoryOther           Category = "Other"
)

// JobTypes lists the selectable job types in display order
var JobTypes = []JobType{
	JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship,
}

// ExperienceLevels lists the selectable experience levels in display order
var ExperienceLevels = []ExperienceLevel{
	ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive,
}

// Categories lists the selectable categories in display order
var Categories = []Category{
	CategoryTechnology,
	CategoryDesign,
	CategoryMarketing,
	CategorySales,
	CategoryCustomerService,
	CategoryFinance,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

// Job is the unified job posting shape shared by every source
type Job struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	SalaryRange     *string         `json:"salary_range"`
	JobType         JobType         `json:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Category        Category        `json:"category"`
	LogoURL         *string         `json:"logo_url"`
	ApplicationURL  *string         `json:"application_url"`
	CreatedAt       time.Time       `json:"created_at"`
	Featured        bool            `json:"featured"`
	Remote          bool            `json:"remote"`
}

// Filters narrow the loaded page of jobs on the client side
type Filters struct {
	Search          string          `json:"search"`
	Category        Category        `json:"category"`
	JobType         JobType         `json:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Remote          bool            `json:"remote"`
}

// IsZero reports whether no filter is active
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Validate checks that enumerated fields are empty or known values
func (f Filters) Validate() error {
	if f.Category != "" && !contains(Categories, f.Category) {
		return fmt.Errorf("unknown category %q", f.Category)
	}
	if f.JobType != "" && !contains(JobTypes, f.JobType) {
		return fmt.Errorf("unknown job type %q", f.JobType)
	}
	if f.ExperienceLevel != "" && !contains(ExperienceLevels, f.ExperienceLevel) {
		return fmt.Errorf("unknown experience level %q", f.ExperienceLevel)
	}
	return nil
}

// Pagination describes the current page position
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	TotalJobs  int   `json:"total_jobs"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	Window     []int `json:"window"` // 0 marks an elided gap
}

// CategoryCount is the number of loaded jobs in a category
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Snapshot is a consistent view of the jobs service state
type Snapshot struct {
	Jobs       []Job      `json:"jobs"`
	Featured   []Job      `json:"featured"`
	Filtered   []Job      `json:"filtered"`
	Filters    Filters    `json:"filters"`
	Pagination Pagination `json:"pagination"`
	Loading    bool       `json:"loading"`
	Error      string     `json:"error,omitempty"`
	FetchedAt  time.Time  `json:"fetched_at"`
}

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
