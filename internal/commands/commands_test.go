package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/domain/job/jobtest"
	"github.com/honeycarbs/jobboard/internal/export"
	"github.com/honeycarbs/jobboard/internal/mcp"
	"github.com/honeycarbs/jobboard/internal/mcpclient"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// testMeta returns a Meta whose sessions talk to an in-process MCP server
func testMeta(t *testing.T) (Meta, *cli.MockUi) {
	t.Helper()

	featured := jobtest.Job("f1", 4)
	featured.Featured = true
	featured.Remote = true

	secondary := jobtest.NewSource("alerts", 1, jobtest.Job("alert-2", 2))
	secondary.Prefix = "alert-"

	svc, err := job.NewService(
		job.WithSources(jobtest.NewSource("listings", 2, featured, jobtest.Job("j1", 1)), secondary),
		job.WithBookmarks(&jobtest.Bookmarks{}),
	)
	require.NoError(t, err)

	server := mcp.NewMCPServer(logging.NewNop(), svc, export.NewSheetsExporter(nil, nil))
	ui := cli.NewMockUi()

	return Meta{
		Ui:      ui,
		Version: "test",
		Dial: func(ctx context.Context, _ string) (Caller, error) {
			st, ct := sdkmcp.NewInMemoryTransports()
			if _, err := server.Connect(context.Background(), st, nil); err != nil {
				return nil, err
			}
			return mcpclient.ConnectTransport(ctx, ct, "test")
		},
	}, ui
}

func TestListCommand(t *testing.T) {
	meta, ui := testMeta(t)
	cmd := &ListCommand{Meta: meta}

	require.Equal(t, 0, cmd.Run(nil), ui.ErrorWriter.String())
	out := ui.OutputWriter.String()
	require.Contains(t, out, "f1  Job f1 - Acme, Remote (remote) *  [2024-01-04]")
	require.Contains(t, out, "alert-2  Job alert-2")
	require.Contains(t, out, "page 1 of 1 (3 jobs total)  [1]")
}

func TestListCommandBadPage(t *testing.T) {
	meta, ui := testMeta(t)

	require.Equal(t, 0, (&ListCommand{Meta: meta}).Run(nil))
	require.Equal(t, 1, (&ListCommand{Meta: meta}).Run([]string{"-page", "7"}))
	require.Contains(t, ui.ErrorWriter.String(), "page 7 is out of range")
}

func TestGetCommand(t *testing.T) {
	meta, ui := testMeta(t)

	require.Equal(t, 0, (&GetCommand{Meta: meta}).Run([]string{"alert-2"}))
	require.Contains(t, ui.OutputWriter.String(), "ID:          alert-2")
	require.Contains(t, ui.OutputWriter.String(), "Saved:       false")

	require.Equal(t, 2, (&GetCommand{Meta: meta}).Run([]string{"nope"}))
	require.Equal(t, 1, (&GetCommand{Meta: meta}).Run(nil))
}

func TestSaveAndSavedCommands(t *testing.T) {
	meta, ui := testMeta(t)

	require.Equal(t, 0, (&SaveCommand{Meta: meta}).Run([]string{"j1"}))
	require.Equal(t, 0, (&SaveCommand{Meta: meta}).Run([]string{"j1"}))
	require.Equal(t, 0, (&SaveCommand{Meta: meta}).Run([]string{"gone"}))
	out := ui.OutputWriter.String()
	require.Contains(t, out, "saved j1")
	require.Contains(t, out, "j1 is already saved")
	require.Contains(t, out, "2 saved job(s)")

	ui.OutputWriter.Reset()
	require.Equal(t, 0, (&SavedCommand{Meta: meta}).Run(nil))
	require.Contains(t, ui.OutputWriter.String(), "j1  Job j1")
	require.Contains(t, ui.ErrorWriter.String(), "gone  (unavailable)")

	ui.OutputWriter.Reset()
	require.Equal(t, 0, (&SaveCommand{Meta: meta, Remove: true}).Run([]string{"j1"}))
	require.Equal(t, 0, (&SavedCommand{Meta: meta}).Run([]string{"-ids"}))
	require.Equal(t, "removed j1\n1 saved job(s)\ngone\n", ui.OutputWriter.String())
}

func TestFeaturedCommand(t *testing.T) {
	meta, ui := testMeta(t)

	require.Equal(t, 0, (&ListCommand{Meta: meta}).Run(nil))
	ui.OutputWriter.Reset()

	require.Equal(t, 0, (&FeaturedCommand{Meta: meta}).Run(nil))
	require.Equal(t, 1, strings.Count(ui.OutputWriter.String(), "\n"))
	require.Contains(t, ui.OutputWriter.String(), "f1  Job f1")
}

func TestDialFailure(t *testing.T) {
	ui := cli.NewMockUi()
	meta := Meta{Ui: ui, Dial: func(context.Context, string) (Caller, error) {
		return nil, errors.New("connection refused")
	}}

	require.Equal(t, 1, (&ListCommand{Meta: meta}).Run(nil))
	require.Contains(t, ui.ErrorWriter.String(), "connection refused")
}

func TestStoreKeyCommand(t *testing.T) {
	ui := cli.NewMockUi()
	ui.InputReader = strings.NewReader("  secret-key \n")

	var gotURL, gotKey string
	cmd := &StoreKeyCommand{Ui: ui, SetKey: func(u, k string) error {
		gotURL, gotKey = u, k
		return nil
	}}

	require.Equal(t, 0, cmd.Run([]string{"-url", "https://abc.supabase.co"}))
	require.Equal(t, "https://abc.supabase.co", gotURL)
	require.Equal(t, "secret-key", gotKey)
	require.Contains(t, ui.OutputWriter.String(), "jobboard/supabase:anon:abc.supabase.co")
}

func TestFormatWindow(t *testing.T) {
	p := domain.Pagination{Page: 5, Window: []int{1, 0, 4, 5, 6, 0, 10}}
	require.Equal(t, "1 … 4 [5] 6 … 10", formatWindow(p))
}
