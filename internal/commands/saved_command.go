package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobboard/internal/mcp/tools"
)

type SavedCommand struct {
	Meta

	ids bool
}

func (c *SavedCommand) flags() *flag.FlagSet {
	fs := c.defaultFlagSet("saved")
	fs.BoolVar(&c.ids, "ids", false, "print ids only, without looking jobs up")
	fs.Usage = func() { c.Ui.Error(c.Help()) }
	return fs
}

func (c *SavedCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}

	var res tools.SavedJobs
	if _, err := c.call("saved_jobs", map[string]any{"resolve": !c.ids}, &res); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	if c.ids {
		for _, id := range res.IDs {
			c.Ui.Output(id)
		}
		return 0
	}

	for _, j := range res.Jobs {
		c.Ui.Output(formatJob(j))
	}
	for _, id := range res.Missing {
		c.Ui.Warn(fmt.Sprintf("%s  (unavailable)", id))
	}
	if len(res.IDs) == 0 {
		c.Ui.Output("no saved jobs")
	}
	return 0
}

func (c *SavedCommand) Help() string {
	helpText := `
Usage: jobboardctl saved [options]

` + c.Synopsis() + "\n\n" + helpForFlags(c.flags())
	return strings.TrimSpace(helpText)
}

func (c *SavedCommand) Synopsis() string {
	return "Lists saved jobs in the order they were saved"
}
