package sekha

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateConversation stores a new conversation and returns the created
// record. The controller does not echo messages back; the returned
// Conversation carries the summary fields only.
//
// The payload is validated locally first: an empty label or empty message
// sequence fails with ErrValidation without a round trip.
func (c *Client) CreateConversation(ctx context.Context, conv NewConversation) (*Conversation, error) {
	const op = "CreateConversation"

	if err := conv.Validate(); err != nil {
		return nil, &Error{Op: op, Kind: ErrValidation, Msg: err.Error()}
	}

	var created Conversation
	if err := c.do(ctx, op, http.MethodPost, "/api/v1/conversations", nil, conv, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetConversation fetches one conversation with its full message sequence.
// An absent id fails with ErrNotFound.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	const op = "GetConversation"

	if id == "" {
		return nil, &Error{Op: op, Kind: ErrValidation, Msg: "id is required"}
	}

	var conv Conversation
	if err := c.do(ctx, op, http.MethodGet, "/api/v1/conversations/"+url.PathEscape(id), nil, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListOptions filters and paginates ListConversations.
type ListOptions struct {
	// Label restricts results to conversations with this label. Empty
	// matches all.
	Label string

	// Folder restricts results to conversations in this folder. Empty
	// matches all.
	Folder string

	// Page is the 1-based page number. Zero means page 1.
	Page int

	// PageSize is the page length, 1..MaxPageSize. Zero lets the controller
	// apply its default.
	PageSize int
}

// ListConversations returns one page of conversation summaries, without
// messages.
func (c *Client) ListConversations(ctx context.Context, opts ListOptions) (*ConversationPage, error) {
	const op = "ListConversations"

	if opts.Page < 0 || opts.PageSize < 0 || opts.PageSize > MaxPageSize {
		return nil, &Error{Op: op, Kind: ErrValidation, Msg: "page and page_size must be within bounds"}
	}

	query := url.Values{}
	if opts.Label != "" {
		query.Set("label", opts.Label)
	}
	if opts.Folder != "" {
		query.Set("folder", opts.Folder)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}

	var page ConversationPage
	if err := c.do(ctx, op, http.MethodGet, "/api/v1/conversations", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// updateLabelRequest matches PUT /conversations/{id}/label.
type updateLabelRequest struct {
	Label  string `json:"label"`
	Folder string `json:"folder"`
}

// UpdateConversationLabel reassigns a conversation's label and folder.
func (c *Client) UpdateConversationLabel(ctx context.Context, id, label, folder string) error {
	const op = "UpdateConversationLabel"

	if id == "" || label == "" {
		return &Error{Op: op, Kind: ErrValidation, Msg: "id and label are required"}
	}

	body := updateLabelRequest{Label: label, Folder: folder}
	return c.do(ctx, op, http.MethodPut, "/api/v1/conversations/"+url.PathEscape(id)+"/label", nil, body, nil)
}

// updateStatusRequest matches PUT /conversations/{id}/status.
type updateStatusRequest struct {
	Status ConversationStatus `json:"status"`
}

// UpdateConversationStatus moves a conversation to a new lifecycle state.
// The status is checked locally against the closed set.
func (c *Client) UpdateConversationStatus(ctx context.Context, id string, status ConversationStatus) error {
	const op = "UpdateConversationStatus"

	if id == "" {
		return &Error{Op: op, Kind: ErrValidation, Msg: "id is required"}
	}
	switch status {
	case StatusActive, StatusArchived, StatusDeleted:
	default:
		return &Error{Op: op, Kind: ErrValidation, Msg: "unknown conversation status " + strconv.Quote(string(status))}
	}

	body := updateStatusRequest{Status: status}
	return c.do(ctx, op, http.MethodPut, "/api/v1/conversations/"+url.PathEscape(id)+"/status", nil, body, nil)
}

// DeleteConversation removes a conversation. An absent id fails with
// ErrNotFound.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	const op = "DeleteConversation"

	if id == "" {
		return &Error{Op: op, Kind: ErrValidation, Msg: "id is required"}
	}

	return c.do(ctx, op, http.MethodDelete, "/api/v1/conversations/"+url.PathEscape(id), nil, nil, nil)
}

// countResponse matches GET /conversations/count.
type countResponse struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

// CountConversations returns the number of conversations carrying label.
func (c *Client) CountConversations(ctx context.Context, label string) (int, error) {
	const op = "CountConversations"

	if label == "" {
		return 0, &Error{Op: op, Kind: ErrValidation, Msg: "label is required"}
	}

	query := url.Values{}
	query.Set("label", label)

	var resp countResponse
	if err := c.do(ctx, op, http.MethodGet, "/api/v1/conversations/count", query, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
