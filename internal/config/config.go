// Package config resolves CLI configuration for the sekha command: an
// optional HCL file at ~/.sekha/config.hcl, overridden by the SEKHA_API_URL
// and SEKHA_API_KEY environment variables, overridden by command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/sekha-ai/sekha-controller/pkg/sekha"
)

const (
	// DefaultBaseURL is used when neither file, environment, nor flags set
	// an address.
	DefaultBaseURL = "http://localhost:8080"

	// EnvBaseURL and EnvAPIKey are the environment variables the CLI honors.
	EnvBaseURL = "SEKHA_API_URL"
	EnvAPIKey  = "SEKHA_API_KEY"
)

// Config is the CLI configuration.
type Config struct {
	BaseURL string `hcl:"base_url,optional"`
	APIKey  string `hcl:"api_key,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// DefaultPath returns the default config file location, ~/.sekha/config.hcl.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sekha", "config.hcl")
}

// Load resolves the configuration from path and the environment. A missing
// file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return cfg, nil
}

// ClientConfig converts the CLI configuration into a client configuration.
func (c *Config) ClientConfig() (*sekha.ClientConfig, error) {
	clientCfg := sekha.DefaultClientConfig()
	clientCfg.BaseURL = c.BaseURL
	clientCfg.APIKey = c.APIKey

	if c.Timeout != "" {
		timeout, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		clientCfg.Timeout = timeout
	}

	return clientCfg, nil
}
