package store

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sekha-ai/sekha-controller/internal/cmd/base"
	"github.com/sekha-ai/sekha-controller/pkg/sekha"
)

type Command struct {
	*base.Command

	clientFlags base.ClientFlags
	flagLabel   string
	flagFolder  string
}

func (c *Command) Synopsis() string {
	return "Import a conversation from a transcript file"
}

func (c *Command) Help() string {
	return `Usage: sekha store [options] <file>

  Parses a local transcript (JSON or YAML) into messages and stores it as a
  new conversation. The transcript carries a "messages" list of role/content
  pairs and an optional "folder".` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("store", flag.ContinueOnError))

	c.clientFlags.Register(f)
	f.StringVar(&c.flagLabel, "label", "Imported", "Label for the imported conversation.")
	f.StringVar(&c.flagFolder, "folder", "", "Folder override. Default: the transcript's folder, or /imported.")

	return f
}

func (c *Command) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if len(flags.Args()) != 1 {
		c.UI.Error("exactly one transcript file is required")
		return 1
	}
	path := flags.Args()[0]

	data, err := os.ReadFile(path)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error reading %s: %v", path, err))
		return 1
	}

	conv, err := parseTranscript(path, data, c.flagLabel, c.flagFolder)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error parsing %s: %v", path, err))
		return 1
	}

	client, err := c.NewClient(c.clientFlags)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	defer client.Close()

	created, err := client.CreateConversation(context.Background(), *conv)
	if err != nil {
		c.UI.Error(fmt.Sprintf("store failed: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("Imported conversation: %s", created.ID))
	return 0
}

// transcript is the on-disk import format.
type transcript struct {
	Folder   string `json:"folder" yaml:"folder"`
	Messages []struct {
		Role    string `json:"role" yaml:"role"`
		Content string `json:"content" yaml:"content"`
	} `json:"messages" yaml:"messages"`
}

// parseTranscript decodes a JSON or YAML transcript, selected by file
// extension, into a create payload.
func parseTranscript(path string, data []byte, label, folderOverride string) (*sekha.NewConversation, error) {
	var t transcript

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
	}

	folder := t.Folder
	if folderOverride != "" {
		folder = folderOverride
	}
	if folder == "" {
		folder = "/imported"
	}

	conv := &sekha.NewConversation{
		Label:  label,
		Folder: folder,
	}
	for _, m := range t.Messages {
		conv.Messages = append(conv.Messages, sekha.NewMessage{
			Role:    sekha.MessageRole(m.Role),
			Content: m.Content,
		})
	}

	return conv, nil
}
