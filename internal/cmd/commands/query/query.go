package query

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
	"github.com/sekha-ai/sekha-controller/pkg/sekha"
)

type Command struct {
	*base.Command

	clientFlags base.ClientFlags
	flagLabel   string
	flagLimit   int
}

func (c *Command) Synopsis() string {
	return "Search conversations"
}

func (c *Command) Help() string {
	return `Usage: sekha query [options] <text>

  Runs a semantic search across stored conversations and prints a table of
  matches with their relevance scores.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("query", flag.ContinueOnError))

	c.clientFlags.Register(f)
	f.StringVar(&c.flagLabel, "label", "", "Filter matches by label.")
	f.IntVar(&c.flagLimit, "limit", 10, "Maximum number of results.")

	return f
}

func (c *Command) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	text := strings.TrimSpace(strings.Join(flags.Args(), " "))
	if text == "" {
		c.UI.Error("query text is required")
		return 1
	}

	client, err := c.NewClient(c.clientFlags)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	defer client.Close()

	req := sekha.QueryRequest{
		Query:    text,
		PageSize: c.flagLimit,
	}
	if c.flagLabel != "" {
		req.Labels = []string{c.flagLabel}
	}

	resp, err := client.SmartQuery(context.Background(), req)
	if err != nil {
		c.UI.Error(fmt.Sprintf("query failed: %v", err))
		return 1
	}

	if len(resp.Results) == 0 {
		c.UI.Info("No matches.")
		return 0
	}

	c.UI.Output(renderTable(resp.Results))
	c.UI.Info(fmt.Sprintf("%d of %d matches", len(resp.Results), resp.Total))
	return 0
}

func renderTable(results []sekha.QueryResult) string {
	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tLABEL\tSCORE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", shortID(r.ConversationID), r.Label, r.Score)
	}
	w.Flush()

	return strings.TrimRight(buf.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
