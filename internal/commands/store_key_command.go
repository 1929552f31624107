package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/honeycarbs/jobboard/internal/secrets"
)

// StoreKeyCommand saves the Supabase anon key in the OS keyring so the
// server can run without SUPABASE_ANON_KEY in its environment
type StoreKeyCommand struct {
	Ui cli.Ui

	// SetKey defaults to secrets.SetAnonKey
	SetKey func(projectURL, key string) error

	url string
}

func (c *StoreKeyCommand) flags() *flag.FlagSet {
	fs := flag.NewFlagSet("store-key", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.url, "url", os.Getenv("SUPABASE_URL"), "Supabase project URL (env SUPABASE_URL)")
	fs.Usage = func() { c.Ui.Error(c.Help()) }
	return fs
}

func (c *StoreKeyCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}
	if c.url == "" {
		c.Ui.Error("store-key requires -url or SUPABASE_URL")
		return 1
	}

	key, err := c.Ui.AskSecret("Anon key:")
	if err != nil {
		c.Ui.Error(fmt.Sprintf("reading key failed: %s", err))
		return 1
	}

	set := c.SetKey
	if set == nil {
		set = secrets.SetAnonKey
	}
	if err := set(c.url, strings.TrimSpace(key)); err != nil {
		c.Ui.Error(fmt.Sprintf("storing key failed: %s", err))
		return 1
	}

	c.Ui.Output(fmt.Sprintf("stored anon key as %s/%s", secrets.KeyringService, secrets.AnonKeyAccount(c.url)))
	return 0
}

func (c *StoreKeyCommand) Help() string {
	helpText := `
Usage: jobboardctl store-key [options]

` + c.Synopsis() + "\n\n" + helpForFlags(c.flags())
	return strings.TrimSpace(helpText)
}

func (c *StoreKeyCommand) Synopsis() string {
	return "Stores the Supabase anon key in the OS keyring"
}
