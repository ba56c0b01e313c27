package sekha

import (
	"context"
	"net/http"
)

// pruneResponse matches GET /pruning-suggestions.
type pruneResponse struct {
	Suggestions []PruningSuggestion `json:"suggestions"`
	Total       int                 `json:"total"`
}

// PruningSuggestions returns the controller's current pruning
// recommendations. The reason text is generated server-side and passed
// through verbatim.
func (c *Client) PruningSuggestions(ctx context.Context) ([]PruningSuggestion, error) {
	const op = "PruningSuggestions"

	var resp pruneResponse
	if err := c.do(ctx, op, http.MethodGet, "/api/v1/pruning-suggestions", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Health fetches the controller's health document.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	const op = "Health"

	var status HealthStatus
	if err := c.do(ctx, op, http.MethodGet, "/health", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
