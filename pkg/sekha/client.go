package sekha

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Client is a typed client for the Sekha controller REST API. A Client is
// immutable after construction and safe for concurrent use; the export
// fan-out relies on that. It owns a single HTTP transport which is released
// exactly once, on Close.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     hclog.Logger

	// baseCtx is cancelled on Close so in-flight requests are torn down.
	baseCtx context.Context
	cancel  context.CancelFunc
	closed  atomic.Bool

	// Export fan-out tuning. Fixed at construction.
	exportPageSize    int
	exportMaxInFlight int
}

// NewClient creates a client for the controller at cfg.BaseURL. The
// configuration is copied; later mutation of cfg has no effect.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		cfg = &ClientConfig{}
	}
	cc := *cfg
	cc.applyDefaults()

	if err := cc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		config:            &cc,
		httpClient:        cc.NewHTTPClient(),
		logger:            cc.Logger.Named("sekha-client"),
		baseCtx:           ctx,
		cancel:            cancel,
		exportPageSize:    50,
		exportMaxInFlight: 4,
	}, nil
}

// Close releases the transport. Outstanding requests are cancelled and the
// client cannot be reused; subsequent calls fail fast with ErrClientClosed.
// Close is idempotent.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.cancel()
	c.httpClient.CloseIdleConnections()
	return nil
}

// apiError is the controller's error envelope.
type apiError struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// do executes one API request: bearer auth, JSON codec, uniform error
// mapping. Idempotent (GET) requests that fail at the transport level are
// retried with exponential backoff; nothing else is ever retried, so a
// create can never be duplicated by the client.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, result any) error {
	if c.closed.Load() {
		return &Error{Op: op, Kind: ErrClientClosed}
	}

	// Tie the request to the client lifetime so Close cancels it.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.baseCtx, cancel)
	defer stop()

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Kind: ErrSerialization, Msg: err.Error()}
		}
	}

	attempt := func() error {
		return c.roundTrip(ctx, op, method, endpoint, payload, result)
	}

	if method != http.MethodGet || c.config.MaxRetries == 0 {
		return attempt()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.RetryDelay
	policy := backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(c.config.MaxRetries)), ctx)

	err := backoff.Retry(func() error {
		err := attempt()
		if err != nil && !IsTransport(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)

	// A cancelled retry context surfaces as a raw context error; keep the
	// taxonomy closed.
	var mapped *Error
	if err != nil && !errors.As(err, &mapped) {
		return &Error{Op: op, Kind: ErrTransport, Msg: err.Error()}
	}
	return err
}

// roundTrip performs a single request/response cycle and maps the outcome
// into the closed error taxonomy. No caller above this ever observes a raw
// status code.
func (c *Client) roundTrip(ctx context.Context, op, method, endpoint string, payload []byte, result any) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return &Error{Op: op, Kind: ErrTransport, Msg: err.Error()}
	}

	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("sending request",
		"method", method,
		"url", endpoint,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: ErrTransport, Msg: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Kind: ErrTransport, Msg: err.Error()}
	}

	c.logger.Debug("received response",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapStatus(op, resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &Error{Op: op, Kind: ErrSerialization, StatusCode: resp.StatusCode, Msg: err.Error()}
		}
	}

	return nil
}

// mapStatus converts a non-2xx response into exactly one taxonomy kind,
// retaining the status code and the controller-provided message when the
// body carries the error envelope.
func (c *Client) mapStatus(op string, status int, body []byte) error {
	msg := string(body)
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		msg = envelope.Error
	}

	kind := ErrValidation
	switch {
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status >= 500:
		kind = ErrServer
	}

	return &Error{Op: op, Kind: kind, StatusCode: status, Msg: msg}
}
