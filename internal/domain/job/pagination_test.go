package job

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		total, size, want int
	}{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{150, 50, 3},
		{10, 0, 0},
	}
	for _, tc := range testCases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPageRange(t *testing.T) {
	r := PageRange(3, 50)
	if r.From != 100 || r.To != 149 {
		t.Fatalf("unexpected range %s", r)
	}
	if r.Limit() != 50 {
		t.Fatalf("limit = %d, want 50", r.Limit())
	}
	if r.String() != "100-149" {
		t.Fatalf("String() = %q", r.String())
	}
}

func TestPageWindow(t *testing.T) {
	testCases := []struct {
		current, pages int
		want           []int
	}{
		{1, 0, nil},
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 0, 10}},
		{5, 10, []int{1, 0, 4, 5, 6, 0, 10}},
		{3, 10, []int{1, 2, 3, 4, 0, 10}},
		{10, 10, []int{1, 0, 9, 10}},
	}
	for _, tc := range testCases {
		got := PageWindow(tc.current, tc.pages)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("PageWindow(%d, %d) (-want +got):\n%s", tc.current, tc.pages, diff)
		}
	}
}

func TestPaginateFlags(t *testing.T) {
	p := paginate(2, 50, 150)
	if !p.HasPrev || !p.HasNext {
		t.Fatalf("page 2 of 3 should have prev and next: %+v", p)
	}
	if p.TotalPages != 3 || p.TotalJobs != 150 || p.PageSize != 50 {
		t.Fatalf("unexpected pagination %+v", p)
	}
}
