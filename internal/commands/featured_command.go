package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobboard/internal/mcp/tools"
)

// homeFeaturedLimit is how many featured jobs the home page shows
const homeFeaturedLimit = 3

type FeaturedCommand struct {
	Meta

	limit int
}

func (c *FeaturedCommand) flags() *flag.FlagSet {
	fs := c.defaultFlagSet("featured")
	fs.IntVar(&c.limit, "limit", homeFeaturedLimit, "maximum jobs to show; 0 shows all")
	fs.Usage = func() { c.Ui.Error(c.Help()) }
	return fs
}

func (c *FeaturedCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}

	var res tools.FeaturedJobs
	if _, err := c.call("featured_jobs", map[string]any{"limit": c.limit}, &res); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	if len(res.Jobs) == 0 {
		c.Ui.Output("no featured jobs on this page")
		return 0
	}
	for _, j := range res.Jobs {
		c.Ui.Output(formatJob(j))
	}
	return 0
}

func (c *FeaturedCommand) Help() string {
	helpText := `
Usage: jobboardctl featured [options]

` + c.Synopsis() + "\n\n" + helpForFlags(c.flags())
	return strings.TrimSpace(helpText)
}

func (c *FeaturedCommand) Synopsis() string {
	return "Lists featured jobs from the loaded page"
}
