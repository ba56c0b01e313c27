package prune

import (
	"context"
	"flag"
	"fmt"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
)

type Command struct {
	*base.Command

	clientFlags base.ClientFlags
	flagDryRun  bool
}

func (c *Command) Synopsis() string {
	return "List the controller's pruning suggestions"
}

func (c *Command) Help() string {
	return `Usage: sekha prune [options]

  Fetches the controller's current pruning suggestions. Pruning itself is
  performed by the controller; this command only reports what it recommends.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("prune", flag.ContinueOnError))

	c.clientFlags.Register(f)
	f.BoolVar(&c.flagDryRun, "dry-run", false, "Show what would be pruned.")

	return f
}

func (c *Command) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if !c.flagDryRun {
		c.UI.Warn("Use -dry-run to see suggestions")
		return 1
	}

	client, err := c.NewClient(c.clientFlags)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	defer client.Close()

	suggestions, err := client.PruningSuggestions(context.Background())
	if err != nil {
		c.UI.Error(fmt.Sprintf("error fetching suggestions: %v", err))
		return 1
	}

	if len(suggestions) == 0 {
		c.UI.Info("Nothing to prune.")
		return 0
	}

	c.UI.Info("Would prune:")
	for _, s := range suggestions {
		c.UI.Output(fmt.Sprintf("  - %s: %s", s.ConversationID, s.Reason))
	}
	return 0
}
