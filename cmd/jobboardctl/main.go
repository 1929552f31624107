package main

import (
	"os"

	"github.com/mitchellh/cli"

	"github.com/honeycarbs/jobboard/internal/commands"
)

const version = "0.2.0"

func main() {
	c := &cli.CLI{
		Name:    "jobboardctl",
		Version: version,
		Args:    os.Args[1:],
	}

	ui := &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Writer:      os.Stdout,
			Reader:      os.Stdin,
			ErrorWriter: os.Stderr,
		},
	}

	meta := func() commands.Meta {
		return commands.Meta{Ui: ui, Version: version}
	}

	c.Commands = map[string]cli.CommandFactory{
		"list": func() (cli.Command, error) {
			return &commands.ListCommand{Meta: meta()}, nil
		},
		"get": func() (cli.Command, error) {
			return &commands.GetCommand{Meta: meta()}, nil
		},
		"save": func() (cli.Command, error) {
			return &commands.SaveCommand{Meta: meta()}, nil
		},
		"unsave": func() (cli.Command, error) {
			return &commands.SaveCommand{Meta: meta(), Remove: true}, nil
		},
		"saved": func() (cli.Command, error) {
			return &commands.SavedCommand{Meta: meta()}, nil
		},
		"featured": func() (cli.Command, error) {
			return &commands.FeaturedCommand{Meta: meta()}, nil
		},
		"store-key": func() (cli.Command, error) {
			return &commands.StoreKeyCommand{Ui: ui}, nil
		},
		"version": func() (cli.Command, error) {
			return &commands.VersionCommand{Ui: ui, Version: version}, nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		ui.Error("Error: " + err.Error())
	}

	os.Exit(exitStatus)
}
