package labels

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
	"github.com/sekha-ai/sekha-controller/pkg/sekha"
)

type ListCommand struct {
	*base.Command

	clientFlags base.ClientFlags
}

func (c *ListCommand) Synopsis() string {
	return "List all labels"
}

func (c *ListCommand) Help() string {
	return `Usage: sekha labels list

  Lists the distinct labels across all stored conversations, sorted.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("labels list", flag.ContinueOnError))
	c.clientFlags.Register(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.NewClient(c.clientFlags)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	defer client.Close()

	conversations, err := collectAll(context.Background(), client)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing conversations: %v", err))
		return 1
	}

	for _, label := range DistinctLabels(conversations) {
		c.UI.Output(fmt.Sprintf("  - %s", label))
	}
	return 0
}

// collectAll walks every list page.
func collectAll(ctx context.Context, client *sekha.Client) ([]sekha.Conversation, error) {
	var all []sekha.Conversation

	for page := 1; ; page++ {
		resp, err := client.ListConversations(ctx, sekha.ListOptions{
			Page:     page,
			PageSize: sekha.MaxPageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Conversations...)
		if len(all) >= resp.Total || len(resp.Conversations) == 0 {
			return all, nil
		}
	}
}

// DistinctLabels derives the sorted set of labels carried by the given
// conversations, with no duplicates, independent of input ordering.
func DistinctLabels(conversations []sekha.Conversation) []string {
	seen := make(map[string]bool, len(conversations))
	var labels []string
	for _, conv := range conversations {
		if conv.Label == "" || seen[conv.Label] {
			continue
		}
		seen[conv.Label] = true
		labels = append(labels, conv.Label)
	}
	sort.Strings(labels)
	return labels
}
