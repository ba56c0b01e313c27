package labels

import (
	"github.com/mitchellh/cli"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage conversation labels"
}

func (c *Command) Help() string {
	return `Usage: sekha labels <subcommand> [options]

  This command groups subcommands for working with conversation labels.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
