package sekha

import (
	"context"
	"net/http"
)

// queryFilters is the filter object carried in the query body.
type queryFilters struct {
	Labels []string `json:"labels,omitempty"`
}

// wireQueryRequest matches POST /query. The controller paginates with
// limit/offset; the page-based QueryRequest is translated here.
type wireQueryRequest struct {
	Query   string        `json:"query"`
	Filters *queryFilters `json:"filters,omitempty"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// SmartQuery runs a free-text semantic search and returns one page of scored
// matches. Result ordering within a page is whatever the controller
// returned; the client does not re-sort.
func (c *Client) SmartQuery(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	const op = "SmartQuery"

	req = req.withDefaults()
	if err := req.Validate(); err != nil {
		return nil, &Error{Op: op, Kind: ErrValidation, Msg: err.Error()}
	}

	wire := wireQueryRequest{
		Query:  req.Query,
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	}
	if len(req.Labels) > 0 {
		wire.Filters = &queryFilters{Labels: req.Labels}
	}

	var resp QueryResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/v1/query", nil, wire, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
