package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain/job"
)

func TestStoreIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL must be set to run this test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := Open(ctx, url)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer pool.Close()

	store := NewStore(pool)
	page, err := store.SelectRange(ctx, "jobs", job.PageRange(1, 5))
	if err != nil {
		t.Fatalf("SelectRange: %v", err)
	}
	if len(page.Rows) > 5 {
		t.Fatalf("SelectRange returned %d rows for a limit of 5", len(page.Rows))
	}
	t.Logf("jobs table holds %d rows", page.Total)

	if len(page.Rows) == 0 {
		return
	}
	id := job.Stringify(page.Rows[0]["id"])
	row, ok, err := store.SelectByID(ctx, "jobs", id)
	if err != nil || !ok {
		t.Fatalf("SelectByID(%s): ok=%v err=%v", id, ok, err)
	}
	t.Logf("first job: %v", row["title"])
}
