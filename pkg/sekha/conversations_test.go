package sekha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/conversations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req NewConversation
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Test", req.Label)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, RoleUser, req.Messages[0].Role)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": "test-uuid",
			"label": "Test",
			"folder": "/",
			"status": "active",
			"message_count": 1,
			"created_at": "2025-01-15T10:30:00"
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	created, err := client.CreateConversation(context.Background(), NewConversation{
		Label:    "Test",
		Folder:   "/",
		Messages: []NewMessage{{Role: RoleUser, Content: "Hello"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "test-uuid", created.ID)
	assert.Equal(t, "Test", created.Label)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, 1, created.MessageCount)
	// Server contract: messages are not echoed back.
	assert.Empty(t, created.Messages)
}

func TestCreateConversation_LocalValidation(t *testing.T) {
	// Any request reaching the server is a test failure: invalid input must
	// be rejected without a round trip.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid create must not reach the server")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	t.Run("empty label", func(t *testing.T) {
		_, err := client.CreateConversation(context.Background(), NewConversation{
			Messages: []NewMessage{{Role: RoleUser, Content: "Hello"}},
		})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("empty messages", func(t *testing.T) {
		_, err := client.CreateConversation(context.Background(), NewConversation{
			Label: "Test",
		})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestGetConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/conversations/conv-123", r.URL.Path)

		w.Write([]byte(`{
			"id": "conv-123",
			"label": "Project",
			"folder": "/work",
			"status": "active",
			"message_count": 2,
			"created_at": "2025-01-15T10:30:00",
			"messages": [
				{"role": "user", "content": "hello", "timestamp": "2025-01-15T10:30:00"},
				{"role": "assistant", "content": "hi"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	conv, err := client.GetConversation(context.Background(), "conv-123")
	require.NoError(t, err)

	assert.Equal(t, "conv-123", conv.ID)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "hello", conv.Messages[0].Content)
	assert.Equal(t, RoleAssistant, conv.Messages[1].Role)
}

func TestGetConversation_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Conversation not found","code":404}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetConversation(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "absent id must map to NotFound, got: %v", err)
	assert.False(t, IsValidation(err))
	assert.False(t, IsServer(err))
}

func TestGetConversation_EmptyID(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")
	_, err := client.GetConversation(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestListConversations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/conversations", r.URL.Path)
		assert.Equal(t, "work", r.URL.Query().Get("label"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))

		w.Write([]byte(`{
			"results": [
				{"id":"a","label":"work","folder":"/","status":"active","message_count":3,"created_at":"2025-01-15T10:30:00"},
				{"id":"b","label":"work","folder":"/","status":"archived","message_count":1,"created_at":"2025-01-14T09:00:00"}
			],
			"total": 27,
			"page": 2,
			"page_size": 25
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	page, err := client.ListConversations(context.Background(), ListOptions{
		Label:    "work",
		Page:     2,
		PageSize: 25,
	})
	require.NoError(t, err)

	require.Len(t, page.Conversations, 2)
	assert.Equal(t, 27, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.GreaterOrEqual(t, page.Total, len(page.Conversations))
	assert.GreaterOrEqual(t, page.Page*page.PageSize, len(page.Conversations))
	// Summaries carry no messages.
	assert.Empty(t, page.Conversations[0].Messages)
}

func TestListConversations_BoundsChecked(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")
	_, err := client.ListConversations(context.Background(), ListOptions{PageSize: MaxPageSize + 1})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestUpdateConversationStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/conversations/conv-123/status", r.URL.Path)

		var req struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "archived", req.Status)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.UpdateConversationStatus(context.Background(), "conv-123", StatusArchived))

	err := client.UpdateConversationStatus(context.Background(), "conv-123", ConversationStatus("pinned"))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestUpdateConversationLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/conversations/conv-123/label", r.URL.Path)

		var req updateLabelRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "renamed", req.Label)
		assert.Equal(t, "/archive", req.Folder)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.UpdateConversationLabel(context.Background(), "conv-123", "renamed", "/archive"))
}

func TestDeleteConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/conversations/conv-123", r.URL.Path)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.DeleteConversation(context.Background(), "conv-123"))
}

func TestCountConversations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/conversations/count", r.URL.Path)
		assert.Equal(t, "work", r.URL.Query().Get("label"))
		w.Write([]byte(`{"count": 7, "label": "work"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	count, err := client.CountConversations(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
