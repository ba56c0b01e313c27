package show

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
	"github.com/sekha-ai/sekha-controller/pkg/sekha"
)

type Command struct {
	*base.Command

	clientFlags base.ClientFlags
	flagFormat  string
}

func (c *Command) Synopsis() string {
	return "Show conversation details"
}

func (c *Command) Help() string {
	return `Usage: sekha show [options] <id>

  Fetches one conversation with its full message sequence and renders it as
  markdown or JSON.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("show", flag.ContinueOnError))

	c.clientFlags.Register(f)
	f.StringVar(&c.flagFormat, "format", "markdown", "Output format: markdown or json.")

	return f
}

func (c *Command) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if len(flags.Args()) != 1 {
		c.UI.Error("exactly one conversation id is required")
		return 1
	}
	id := flags.Args()[0]

	if c.flagFormat != "markdown" && c.flagFormat != "json" {
		c.UI.Error(fmt.Sprintf("unknown format %q: must be markdown or json", c.flagFormat))
		return 1
	}

	client, err := c.NewClient(c.clientFlags)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	defer client.Close()

	conv, err := client.GetConversation(context.Background(), id)
	if err != nil {
		if sekha.IsNotFound(err) {
			c.UI.Error(fmt.Sprintf("conversation %s not found", id))
			return 1
		}
		c.UI.Error(fmt.Sprintf("fetch failed: %v", err))
		return 1
	}

	if c.flagFormat == "json" {
		out, err := json.MarshalIndent(conv, "", "  ")
		if err != nil {
			c.UI.Error(fmt.Sprintf("error rendering JSON: %v", err))
			return 1
		}
		c.UI.Output(string(out))
		return 0
	}

	c.UI.Output(renderMarkdown(conv))
	return 0
}

func renderMarkdown(conv *sekha.Conversation) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# %s\n", conv.Label)
	for _, msg := range conv.Messages {
		fmt.Fprintf(&buf, "\n**%s**: %s\n", msg.Role, msg.Content)
	}
	return strings.TrimRight(buf.String(), "\n")
}
