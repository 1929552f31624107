package local

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain/bookmark"
)

func testStorageRoundTrip(t *testing.T, s bookmark.Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "savedJobs")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "savedJobs", `["a"]`))
	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Set(ctx, "savedJobs", `["a","b"]`))

	v, ok, err := s.Get(ctx, "savedJobs")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `["a","b"]`, v)

	v, ok, err = s.Get(ctx, "other")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", v)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	testStorageRoundTrip(t, s)

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	v, ok, err := reopened.Get(context.Background(), "savedJobs")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `["a","b"]`, v)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{oops"), 0o644))

	_, _, err = s.Get(context.Background(), "savedJobs")
	require.Error(t, err)
}

func TestFileStoreRequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	testStorageRoundTrip(t, s)
}

func TestSQLiteStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenSQLite(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestMemoryStore(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)
	testStorageRoundTrip(t, s)
}

func TestBookmarksOverFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := NewFileStore(dir)
	require.NoError(t, err)
	set, err := bookmark.Load(ctx, st, nil)
	require.NoError(t, err)
	set.Save(ctx, "alert-1")
	set.Save(ctx, "42")

	st2, err := NewFileStore(dir)
	require.NoError(t, err)
	set2, err := bookmark.Load(ctx, st2, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"alert-1", "42"}, set2.IDs())
}
