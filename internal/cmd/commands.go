package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
	"github.com/sekha-ai/sekha-controller/internal/cmd/commands/export"
	"github.com/sekha-ai/sekha-controller/internal/cmd/commands/labels"
	"github.com/sekha-ai/sekha-controller/internal/cmd/commands/prune"
	"github.com/sekha-ai/sekha-controller/internal/cmd/commands/query"
	"github.com/sekha-ai/sekha-controller/internal/cmd/commands/show"
	"github.com/sekha-ai/sekha-controller/internal/cmd/commands/store"
	versioncmd "github.com/sekha-ai/sekha-controller/internal/cmd/commands/version"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{
		Log: log,
		UI:  ui,
	}

	Commands = map[string]cli.CommandFactory{
		"query": func() (cli.Command, error) {
			return &query.Command{Command: b}, nil
		},
		"show": func() (cli.Command, error) {
			return &show.Command{Command: b}, nil
		},
		"export": func() (cli.Command, error) {
			return &export.Command{Command: b}, nil
		},
		"prune": func() (cli.Command, error) {
			return &prune.Command{Command: b}, nil
		},
		"store": func() (cli.Command, error) {
			return &store.Command{Command: b}, nil
		},
		"labels": func() (cli.Command, error) {
			return &labels.Command{Command: b}, nil
		},
		"labels list": func() (cli.Command, error) {
			return &labels.ListCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: b}, nil
		},
	}
}
