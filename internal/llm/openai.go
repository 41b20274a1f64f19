// Package llm implements the outbound client for the OpenAI Responses API.
// Each Generate call is a single attempt: no retries, no failover. Generation
// is schema-constrained and the interaction is flagged as not to be stored by
// the provider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request carries everything the caller wants generated: a system
// instruction, a user input, and the required output schema.
type Request struct {
	Instructions string
	Input        string
	SchemaName   string
	Schema       map[string]any
}

// UpstreamError is a non-success response from the provider. Message carries
// the provider's own diagnostic when one was present.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// Client calls the OpenAI Responses API over plain HTTP.
type Client struct {
	apiKey          string
	model           string
	endpoint        string
	maxOutputTokens int
	temperature     float64
	client          *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithEndpoint sets a custom API endpoint (e.g. for proxies or tests).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithTimeout bounds the full round trip of one Generate call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithMaxOutputTokens sets the response-size ceiling. The output is a
// summary, not a transform of the input, so this stays small.
func WithMaxOutputTokens(n int) Option {
	return func(c *Client) { c.maxOutputTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// NewClient creates a Responses API client.
func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:          apiKey,
		model:           model,
		endpoint:        "https://api.openai.com/v1/responses",
		maxOutputTokens: 900,
		temperature:     0.2,
		client:          &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type responsesRequest struct {
	Model           string     `json:"model"`
	Instructions    string     `json:"instructions"`
	Input           string     `json:"input"`
	MaxOutputTokens int        `json:"max_output_tokens"`
	Temperature     float64    `json:"temperature"`
	Store           bool       `json:"store"`
	Text            textConfig `json:"text"`
}

type textConfig struct {
	Format formatSpec `json:"format"`
}

type formatSpec struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// Generate performs one schema-constrained generation and returns the text
// extracted from the response envelope.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(responsesRequest{
		Model:           c.model,
		Instructions:    req.Instructions,
		Input:           req.Input,
		MaxOutputTokens: c.maxOutputTokens,
		Temperature:     c.temperature,
		Store:           false,
		Text: textConfig{
			Format: formatSpec{
				Type:   "json_schema",
				Name:   req.SchemaName,
				Strict: true,
				Schema: req.Schema,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(respBody, resp.StatusCode),
		}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return "", fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env.extractText()
}

// upstreamMessage prefers the provider's own error message and falls back to
// a fixed descriptive string carrying the status.
func upstreamMessage(body []byte, status int) string {
	var failure struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &failure); err == nil && failure.Error != nil && failure.Error.Message != "" {
		return failure.Error.Message
	}
	return fmt.Sprintf("request failed (%d)", status)
}
