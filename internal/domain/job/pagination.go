package job

import (
	"sort"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// TotalPages is ceil(total / size)
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageWindow lists the page numbers to offer around current: the first page,
// the last page and current±1. A 0 entry marks a gap between two shown pages.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}

	out := make([]int, 0, 7)
	prev := 0
	for p := 1; p <= totalPages; p++ {
		if p != 1 && p != totalPages && (p < current-1 || p > current+1) {
			continue
		}
		if prev != 0 && p-prev > 1 {
			out = append(out, 0)
		}
		out = append(out, p)
		prev = p
	}
	return out
}

func paginate(page, size, total int) domain.Pagination {
	pages := TotalPages(total, size)
	return domain.Pagination{
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		TotalJobs:  total,
		HasPrev:    page > 1,
		HasNext:    page < pages,
		Window:     PageWindow(page, pages),
	}
}

func sortCategoryCounts(cs []domain.CategoryCount) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Category < cs[j].Category })
}
