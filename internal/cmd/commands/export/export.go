package export

import (
	"context"
	"flag"
	"fmt"

	"github.com/spf13/afero"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
	"github.com/sekha-ai/sekha-controller/pkg/sekha"
)

type Command struct {
	*base.Command

	// FS is the sink for -output. Defaults to the OS filesystem; tests
	// substitute an in-memory one.
	FS afero.Fs

	clientFlags base.ClientFlags
	flagLabel   string
	flagFormat  string
	flagOutput  string
}

func (c *Command) Synopsis() string {
	return "Export conversations to a single document"
}

func (c *Command) Help() string {
	return `Usage: sekha export [options]

  Assembles every matching conversation, with its full message sequence,
  into one document. The export is all-or-nothing: if any part of it cannot
  be fetched, nothing is written.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("export", flag.ContinueOnError))

	c.clientFlags.Register(f)
	f.StringVar(&c.flagLabel, "label", "", "Export only conversations with this label.")
	f.StringVar(&c.flagFormat, "format", "markdown", "Export format: markdown or json.")
	f.StringVar(&c.flagOutput, "output", "", "Output file. Default: stdout.")

	return f
}

func (c *Command) Run(args []string) int {
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

	doc, err := client.Export(context.Background(), sekha.ExportOptions{
		Label:  c.flagLabel,
		Format: sekha.ExportFormat(c.flagFormat),
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("export failed: %v", err))
		return 1
	}

	if c.flagOutput == "" || c.flagOutput == "-" {
		c.UI.Output(string(doc.Content))
		return 0
	}

	fs := c.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := afero.WriteFile(fs, c.flagOutput, doc.Content, 0o644); err != nil {
		c.UI.Error(fmt.Sprintf("error writing %s: %v", c.flagOutput, err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("Exported %d conversations to %s", doc.Conversations, c.flagOutput))
	return 0
}
