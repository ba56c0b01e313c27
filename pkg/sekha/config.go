package sekha

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

// ClientConfig holds the connection parameters for a Client. It is read
// once at construction and never mutated afterwards, which is what makes a
// shared Client safe for concurrent use.
//
// Example configuration (HCL):
//
//	base_url = "https://sekha.example.com"
//	api_key  = env("SEKHA_API_KEY")
//	timeout  = "30s"
type ClientConfig struct {
	// BaseURL is the base address of the Sekha controller.
	// Example: "http://localhost:8080"
	BaseURL string `hcl:"base_url" json:"baseUrl"`

	// APIKey is the bearer credential attached to every request. When empty,
	// requests are sent unauthenticated and the controller decides whether to
	// reject them.
	APIKey string `hcl:"api_key,optional" json:"-"`

	// Timeout bounds each request. Default: 30 seconds.
	Timeout time.Duration `hcl:"timeout,optional" json:"timeout,omitempty"`

	// MaxRetries is the number of additional attempts for idempotent
	// requests that fail at the transport level. Default: 3.
	MaxRetries int `hcl:"max_retries,optional" json:"maxRetries,omitempty"`

	// RetryDelay is the initial backoff between retries; subsequent waits
	// grow exponentially. Default: 500ms.
	RetryDelay time.Duration `hcl:"retry_delay,optional" json:"retryDelay,omitempty"`

	// TLSVerify controls TLS certificate verification. Disable only for
	// development against self-signed certificates.
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tlsVerify,omitempty"`

	// Logger receives request-level debug logging. Defaults to a null logger.
	Logger hclog.Logger `hcl:"-" json:"-"`

	// HTTPClient, when set, replaces the client NewHTTPClient would build.
	// Tests substitute one backed by a fake transport.
	HTTPClient *http.Client `hcl:"-" json:"-"`
}

// DefaultClientConfig returns a ClientConfig with defaults applied.
func DefaultClientConfig() *ClientConfig {
	tlsVerify := true
	return &ClientConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
		TLSVerify:  &tlsVerify,
	}
}

func (c *ClientConfig) applyDefaults() {
	defaults := DefaultClientConfig()
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaults.MaxRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaults.RetryDelay
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
}

// Validate checks the configuration.
func (c *ClientConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(1))),
		validation.Field(&c.MaxRetries, validation.Min(0)),
		validation.Field(&c.RetryDelay, validation.Min(time.Duration(0))),
	); err != nil {
		return err
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %s", parsed.Scheme)
	}

	return nil
}

// NewHTTPClient creates the HTTP client used by the transport, unless the
// configuration carries an override.
func (c *ClientConfig) NewHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
