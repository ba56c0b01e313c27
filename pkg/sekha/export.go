package sekha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// ExportFormat selects the rendering of an export document.
type ExportFormat string

const (
	// FormatMarkdown renders one heading per conversation followed by one
	// block per message.
	FormatMarkdown ExportFormat = "markdown"

	// FormatJSON renders an ordered sequence of conversation records, each
	// carrying its full message sequence.
	FormatJSON ExportFormat = "json"
)

// ExportOptions controls what Export assembles.
type ExportOptions struct {
	// Label restricts the export to conversations with this label. Empty
	// exports everything.
	Label string

	// Format selects the output rendering. Default: FormatMarkdown.
	Format ExportFormat
}

// ExportDocument is a fully assembled export.
type ExportDocument struct {
	Format        ExportFormat
	Content       []byte
	Conversations int
}

// Export assembles one complete document from all conversations matching
// opts.Label, spanning as many list pages as needed. Page and detail
// fetches run with bounded concurrency. The operation is all-or-nothing: if
// any fetch fails the whole export fails and nothing partial is returned.
func (c *Client) Export(ctx context.Context, opts ExportOptions) (*ExportDocument, error) {
	const op = "Export"

	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}
	switch opts.Format {
	case FormatMarkdown, FormatJSON:
	default:
		return nil, &Error{Op: op, Kind: ErrValidation, Msg: fmt.Sprintf("unknown export format %q", opts.Format)}
	}

	summaries, err := c.collectSummaries(ctx, opts.Label)
	if err != nil {
		return nil, err
	}

	conversations, err := c.collectDetails(ctx, summaries)
	if err != nil {
		return nil, err
	}

	content, err := renderExport(conversations, opts.Format)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrSerialization, Msg: err.Error()}
	}

	return &ExportDocument{
		Format:        opts.Format,
		Content:       content,
		Conversations: len(conversations),
	}, nil
}

// collectSummaries fetches every list page for the label. The first page
// establishes the total; the remaining pages are fetched with at most
// exportMaxInFlight requests outstanding, and reassembled in page order.
func (c *Client) collectSummaries(ctx context.Context, label string) ([]Conversation, error) {
	first, err := c.ListConversations(ctx, ListOptions{
		Label:    label,
		Page:     1,
		PageSize: c.exportPageSize,
	})
	if err != nil {
		return nil, err
	}

	pageCount := 1
	if first.Total > len(first.Conversations) && len(first.Conversations) > 0 {
		pageCount = (first.Total + c.exportPageSize - 1) / c.exportPageSize
	}

	pages := make([][]Conversation, pageCount)
	pages[0] = first.Conversations

	if pageCount > 1 {
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			merr *multierror.Error
			sem  = make(chan struct{}, c.exportMaxInFlight)
		)

		for page := 2; page <= pageCount; page++ {
			wg.Add(1)
			go func(page int) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				resp, err := c.ListConversations(ctx, ListOptions{
					Label:    label,
					Page:     page,
					PageSize: c.exportPageSize,
				})

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					merr = multierror.Append(merr, err)
					return
				}
				pages[page-1] = resp.Conversations
			}(page)
		}

		wg.Wait()
		if err := merr.ErrorOrNil(); err != nil {
			return nil, err
		}
	}

	var all []Conversation
	for _, page := range pages {
		all = append(all, page...)
	}
	return all, nil
}

// collectDetails fetches the full message sequence for each summary,
// preserving the fetched order. Any failure discards the whole batch.
func (c *Client) collectDetails(ctx context.Context, summaries []Conversation) ([]Conversation, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		merr *multierror.Error
		sem  = make(chan struct{}, c.exportMaxInFlight)
	)

	details := make([]Conversation, len(summaries))
	for i, summary := range summaries {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			conv, err := c.GetConversation(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				merr = multierror.Append(merr, err)
				return
			}
			details[i] = *conv
		}(i, summary.ID)
	}

	wg.Wait()
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return details, nil
}

func renderExport(conversations []Conversation, format ExportFormat) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(conversations, "", "  ")
	}

	var buf bytes.Buffer
	for i, conv := range conversations {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "## %s\n\n", conv.Label)
		for _, msg := range conv.Messages {
			fmt.Fprintf(&buf, "**%s**: %s\n\n", msg.Role, msg.Content)
		}
	}
	return buf.Bytes(), nil
}
