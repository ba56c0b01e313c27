package version

import (
	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
	internalversion "github.com/sekha-ai/sekha-controller/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the CLI version"
}

func (c *Command) Help() string {
	return `Usage: sekha version

  Prints the CLI version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(internalversion.Version)
	return 0
}
