package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobboard/internal/mcp/tools"
)

type GetCommand struct {
	Meta
}

func (c *GetCommand) flags() *flag.FlagSet {
	fs := c.defaultFlagSet("get")
	fs.Usage = func() { c.Ui.Error(c.Help()) }
	return fs
}

func (c *GetCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	if f.NArg() != 1 {
		c.Ui.Error("get requires exactly one job id")
		return 1
	}

	var res tools.GetJobResult
	text, err := c.call("get_job", map[string]any{"id": f.Arg(0)}, &res)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	if !res.Found || res.Job == nil {
		c.Ui.Warn(text)
		return 2
	}

	c.Ui.Output(formatJobDetail(*res.Job, res.Saved))
	return 0
}

func (c *GetCommand) Help() string {
	helpText := `
Usage: jobboardctl get [options] <id>

` + c.Synopsis() + "\n\n" + helpForFlags(c.flags())
	return strings.TrimSpace(helpText)
}

func (c *GetCommand) Synopsis() string {
	return "Shows a single job"
}
