package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/cli"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/mcpclient"
)

const callTimeout = 30 * time.Second

// Caller is the tool-calling surface of an MCP session
type Caller interface {
	Call(ctx context.Context, tool string, args map[string]any, out any) (string, error)
	Close() error
}

// DialFunc opens a Caller against an endpoint
type DialFunc func(ctx context.Context, endpoint string) (Caller, error)

// Meta is shared by every command
type Meta struct {
	Ui      cli.Ui
	Version string
	// Dial defaults to an MCP streamable HTTP session
	Dial DialFunc

	endpoint string
}

func (m *Meta) defaultFlagSet(cmdName string) *flag.FlagSet {
	f := flag.NewFlagSet(cmdName, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.Usage = func() {}

	endpoint := os.Getenv("JOBBOARD_ENDPOINT")
	if endpoint == "" {
		endpoint = mcpclient.DefaultEndpoint
	}
	f.StringVar(&m.endpoint, "endpoint", endpoint, "MCP stream endpoint (env JOBBOARD_ENDPOINT)")
	return f
}

// call dials, invokes one tool and closes the session
func (m *Meta) call(tool string, args map[string]any, out any) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	dial := m.Dial
	if dial == nil {
		dial = func(ctx context.Context, endpoint string) (Caller, error) {
			return mcpclient.Connect(ctx, endpoint, m.Version)
		}
	}

	c, err := dial(ctx, m.endpoint)
	if err != nil {
		return "", err
	}
	defer func() { _ = c.Close() }()

	return c.Call(ctx, tool, args, out)
}

func helpForFlags(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Options:\n\n")
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&b, "  -%s=%s\t%s\n", f.Name, f.DefValue, f.Usage)
	})
	return b.String()
}

func formatJob(j domain.Job) string {
	remote := ""
	if j.Remote {
		remote = " (remote)"
	}
	featured := ""
	if j.Featured {
		featured = " *"
	}
	return fmt.Sprintf("%s  %s - %s, %s%s%s  [%s]",
		j.ID, j.Title, j.Company, j.Location, remote, featured, j.CreatedAt.Format("2006-01-02"))
}

func formatJobDetail(j domain.Job, saved bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", j.Title, strings.Repeat("=", len(j.Title)))
	fmt.Fprintf(&b, "ID:          %s\n", j.ID)
	fmt.Fprintf(&b, "Company:     %s\n", j.Company)
	fmt.Fprintf(&b, "Location:    %s\n", j.Location)
	fmt.Fprintf(&b, "Type:        %s\n", j.JobType)
	fmt.Fprintf(&b, "Experience:  %s\n", j.ExperienceLevel)
	fmt.Fprintf(&b, "Category:    %s\n", j.Category)
	fmt.Fprintf(&b, "Remote:      %t\n", j.Remote)
	if j.SalaryRange != nil {
		fmt.Fprintf(&b, "Salary:      %s\n", *j.SalaryRange)
	}
	if j.ApplicationURL != nil {
		fmt.Fprintf(&b, "Apply:       %s\n", *j.ApplicationURL)
	}
	fmt.Fprintf(&b, "Posted:      %s\n", j.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Saved:       %t\n", saved)
	if j.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", j.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatWindow renders a page window, e.g. "1 … 4 [5] 6 … 10"
func formatWindow(p domain.Pagination) string {
	parts := make([]string, 0, len(p.Window))
	for _, n := range p.Window {
		switch {
		case n == 0:
			parts = append(parts, "…")
		case n == p.Page:
			parts = append(parts, fmt.Sprintf("[%d]", n))
		default:
			parts = append(parts, fmt.Sprint(n))
		}
	}
	return strings.Join(parts, " ")
}
