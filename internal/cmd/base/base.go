// Package base carries the pieces shared by all CLI commands: the logger,
// the UI, client construction from resolved configuration, and flag help
// rendering.
package base

import (
	"bytes"
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/sekha-ai/sekha-controller/internal/config"
	"github.com/sekha-ai/sekha-controller/pkg/sekha"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// ClientFlags are the connection flags every command accepts.
type ClientFlags struct {
	Addr   string
	APIKey string
	Config string
}

// Register adds the shared connection flags to f.
func (cf *ClientFlags) Register(f *FlagSet) {
	f.StringVar(&cf.Addr, "addr", "",
		fmt.Sprintf("Controller address. Overrides %s and the config file.", config.EnvBaseURL))
	f.StringVar(&cf.APIKey, "api-key", "",
		fmt.Sprintf("API key. Overrides %s and the config file.", config.EnvAPIKey))
	f.StringVar(&cf.Config, "config", "",
		"Path to config file. Default: ~/.sekha/config.hcl")
}

// NewClient resolves configuration in increasing precedence (file, then
// environment, then flags) and constructs a client.
func (c *Command) NewClient(flags ClientFlags) (*sekha.Client, error) {
	path := flags.Config
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flags.Addr != "" {
		cfg.BaseURL = flags.Addr
	}
	if flags.APIKey != "" {
		cfg.APIKey = flags.APIKey
	}

	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	clientCfg.Logger = c.Log

	return sekha.NewClient(clientCfg)
}

// FlagSet wraps flag.FlagSet with help rendering for command Help text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet returns a FlagSet that stays silent on parse errors; commands
// surface those through the UI instead.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.Usage = func() {}
	f.SetOutput(&bytes.Buffer{})
	return &FlagSet{f}
}

// Help returns the rendered flag defaults, for appending to command Help.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.FlagSet.SetOutput(&buf)
	buf.WriteString("\n\nOptions:\n\n")
	f.PrintDefaults()
	f.FlagSet.SetOutput(&bytes.Buffer{})
	return buf.String()
}
