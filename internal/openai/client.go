// Package openai is a minimal client for the OpenAI chat completions
// API, used to extract structured data from receipt photos.
package openai

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds the upstream model call. When it elapses the
// caller is told to retry; the receipt scan is never left hanging.
const DefaultTimeout = 10 * time.Second

// ErrTimeout signals that the upstream model call exceeded its bound.
var ErrTimeout = errors.New("model call timed out")

// OpenAIError represents an error that occurred during OpenAI API
// interaction.
type OpenAIError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *OpenAIError) Error() string {
	if e.Err == nil {
		return "openai error: " + e.Op
	}
	return "openai error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *OpenAIError) Unwrap() error {
	return e.Err
}

// Client represents a client for the OpenAI API
type Client struct {
	apiKey     string
	apiURL     string
	modelID    string
	httpClient *http.Client
}

// Config holds configuration for the OpenAI client. APIURL overrides
// the chat completions endpoint, mainly for tests.
type Config struct {
	APIKey  string
	ModelID string
	Timeout time.Duration
	APIURL  string
}

// DefaultConfig returns a default configuration for the OpenAI client
func DefaultConfig() *Config {
	return &Config{
		ModelID: "gpt-4o-mini",
		Timeout: DefaultTimeout,
	}
}

// NewClient creates a new OpenAI client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.ModelID == "" {
		config.ModelID = "gpt-4o-mini"
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.APIURL == "" {
		config.APIURL = "https://api.openai.com/v1/chat/completions"
	}

	return &Client{
		apiKey:  config.APIKey,
		apiURL:  config.APIURL,
		modelID: config.ModelID,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}
