package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobboard/internal/mcp/tools"
)

type ListCommand struct {
	Meta

	page    int
	refresh bool
}

func (c *ListCommand) flags() *flag.FlagSet {
	fs := c.defaultFlagSet("list")
	fs.IntVar(&c.page, "page", 0, "page to load (default: current page)")
	fs.BoolVar(&c.refresh, "refresh", false, "refetch the page")
	fs.Usage = func() { c.Ui.Error(c.Help()) }
	return fs
}

func (c *ListCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}

	callArgs := map[string]any{}
	if c.page > 0 {
		callArgs["page"] = c.page
	}
	if c.refresh {
		callArgs["refresh"] = true
	}

	var page tools.JobsPage
	if _, err := c.call("list_jobs", callArgs, &page); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	for _, j := range page.Jobs {
		c.Ui.Output(formatJob(j))
	}
	p := page.Pagination
	c.Ui.Output("")
	c.Ui.Output(fmt.Sprintf("page %d of %d (%d jobs total)  %s", p.Page, p.TotalPages, p.TotalJobs, formatWindow(p)))
	if !page.Filters.IsZero() {
		c.Ui.Warn(fmt.Sprintf("filters active: %+v", page.Filters))
	}
	return 0
}

func (c *ListCommand) Help() string {
	helpText := `
Usage: jobboardctl list [options]

` + c.Synopsis() + "\n\n" + helpForFlags(c.flags())
	return strings.TrimSpace(helpText)
}

func (c *ListCommand) Synopsis() string {
	return "Lists jobs on a page, narrowed by the active filters"
}
