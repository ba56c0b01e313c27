package sekha

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ConversationStatus is the lifecycle state of a stored conversation.
// The set is closed: an unrecognized value on the wire is a decode error,
// never a silent default.
type ConversationStatus string

const (
	StatusActive   ConversationStatus = "active"
	StatusArchived ConversationStatus = "archived"
	StatusDeleted  ConversationStatus = "deleted"
)

func (s *ConversationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch ConversationStatus(raw) {
	case StatusActive, StatusArchived, StatusDeleted:
		*s = ConversationStatus(raw)
		return nil
	}
	return fmt.Errorf("unknown conversation status %q", raw)
}

// MessageRole identifies the author of a message. Closed set.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

func (r *MessageRole) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch MessageRole(raw) {
	case RoleUser, RoleAssistant, RoleSystem:
		*r = MessageRole(raw)
		return nil
	}
	return fmt.Errorf("unknown message role %q", raw)
}

// Time wraps time.Time to tolerate the controller's timestamp formats. The
// service emits naive (zone-less) timestamps in some fields and RFC 3339 in
// others; decoding accepts both, encoding always produces RFC 3339 UTC so a
// decoded value re-encodes to a stable representation.
type Time struct {
	time.Time
}

// NewTime returns a Time normalized to UTC.
func NewTime(t time.Time) Time {
	return Time{t.UTC()}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := dateparse.ParseAny(raw)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// Conversation is a stored conversation. Messages is only populated on a
// detail fetch; list operations return summaries without it. Instances are
// value objects decoded from controller responses and never mutated by the
// client after construction.
type Conversation struct {
	ID           string             `json:"id"`
	Label        string             `json:"label"`
	Folder       string             `json:"folder"`
	Status       ConversationStatus `json:"status"`
	MessageCount int                `json:"message_count"`
	CreatedAt    Time               `json:"created_at"`
	Messages     []Message          `json:"messages,omitempty"`
}

// Message is a single message within a conversation.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp *Time       `json:"timestamp,omitempty"`
}

// NewMessage is a message to be stored as part of a new conversation.
type NewMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Validate checks the message against the closed role set.
func (m NewMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Role, validation.Required,
			validation.In(RoleUser, RoleAssistant, RoleSystem)),
		validation.Field(&m.Content, validation.Required),
	)
}

// NewConversation is the payload for creating a conversation.
type NewConversation struct {
	Label    string       `json:"label"`
	Folder   string       `json:"folder"`
	Messages []NewMessage `json:"messages"`
}

// Validate checks the payload locally so an invalid create fails without a
// round trip. Message elements are validated by hand so failures carry the
// offending index; Skip keeps ozzo from diving into them first.
func (c NewConversation) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Label, validation.Required),
		validation.Field(&c.Messages, validation.Required, validation.Length(1, 0), validation.Skip),
	); err != nil {
		return err
	}
	for i, m := range c.Messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("messages[%d]: %w", i, err)
		}
	}
	return nil
}

const (
	// DefaultPageSize is applied when a query or list request leaves the
	// page size unset.
	DefaultPageSize = 10

	// MaxPageSize is the upper bound the controller accepts for a page.
	MaxPageSize = 100
)

// QueryRequest describes a smart (semantic) query.
type QueryRequest struct {
	// Query is the free-text query. Required.
	Query string

	// Labels optionally restricts matches to conversations with these labels.
	Labels []string

	// Page is the 1-based page number. Zero means page 1.
	Page int

	// PageSize is the number of results per page, 1..MaxPageSize. Zero means
	// DefaultPageSize.
	PageSize int
}

func (r QueryRequest) withDefaults() QueryRequest {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
	return r
}

// Validate checks the request after defaults are applied.
func (r QueryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required),
		validation.Field(&r.Page, validation.Min(1)),
		validation.Field(&r.PageSize, validation.Min(1), validation.Max(MaxPageSize)),
	)
}

// QueryResult is a single scored match returned by a smart query.
type QueryResult struct {
	ConversationID string         `json:"conversation_id"`
	MessageID      string         `json:"message_id"`
	Score          float64        `json:"score"`
	Content        string         `json:"content"`
	Metadata       map[string]any `json:"metadata"`
	Label          string         `json:"label"`
	Folder         string         `json:"folder"`
	Timestamp      Time           `json:"timestamp"`
}

// QueryResponse is one page of smart query results. Result ordering is
// whatever the controller returned; the client does not re-sort.
type QueryResponse struct {
	Results  []QueryResult `json:"results"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ConversationPage is one page of conversation summaries.
type ConversationPage struct {
	Conversations []Conversation `json:"results"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

// PruningSuggestion is a controller-generated recommendation to remove a
// conversation. Reason is opaque text passed through verbatim.
type PruningSuggestion struct {
	ConversationID string `json:"conversation_id"`
	Reason         string `json:"reason"`
}

// HealthStatus is the controller's health document.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp Time   `json:"timestamp"`
}

// Healthy reports whether the controller considers itself healthy.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}
