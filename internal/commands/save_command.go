package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobboard/internal/mcp/tools"
)

// SaveCommand adds a job id to the saved set, or removes it when Remove is set
type SaveCommand struct {
	Meta
	Remove bool
}

func (c *SaveCommand) name() string {
	if c.Remove {
		return "unsave"
	}
	return "save"
}

func (c *SaveCommand) flags() *flag.FlagSet {
	fs := c.defaultFlagSet(c.name())
	fs.Usage = func() { c.Ui.Error(c.Help()) }
	return fs
}

func (c *SaveCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	if f.NArg() != 1 {
		c.Ui.Error(c.name() + " requires exactly one job id")
		return 1
	}

	tool := "save_job"
	if c.Remove {
		tool = "unsave_job"
	}

	var res tools.SaveJobResult
	if _, err := c.call(tool, map[string]any{"id": f.Arg(0)}, &res); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	switch {
	case !res.Changed && c.Remove:
		c.Ui.Output(fmt.Sprintf("%s was not saved", res.ID))
	case !res.Changed:
		c.Ui.Output(fmt.Sprintf("%s is already saved", res.ID))
	case c.Remove:
		c.Ui.Output(fmt.Sprintf("removed %s", res.ID))
	default:
		c.Ui.Output(fmt.Sprintf("saved %s", res.ID))
	}
	c.Ui.Output(fmt.Sprintf("%d saved job(s)", len(res.Saved)))
	return 0
}

func (c *SaveCommand) Help() string {
	helpText := `
Usage: jobboardctl ` + c.name() + ` [options] <id>

` + c.Synopsis() + "\n\n" + helpForFlags(c.flags())
	return strings.TrimSpace(helpText)
}

func (c *SaveCommand) Synopsis() string {
	if c.Remove {
		return "Removes a job from the saved list"
	}
	return "Adds a job to the saved list"
}
