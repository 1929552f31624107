package commands

import (
	"fmt"

	"github.com/mitchellh/cli"
)

type VersionCommand struct {
	Ui      cli.Ui
	Version string
}

func (c *VersionCommand) Run([]string) int {
	c.Ui.Output(fmt.Sprintf("jobboardctl %s", c.Version))
	return 0
}

func (c *VersionCommand) Help() string {
	return "Usage: jobboardctl version\n\n" + c.Synopsis()
}

func (c *VersionCommand) Synopsis() string {
	return "Prints the client version"
}
