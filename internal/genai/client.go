// Package genai adapts the external text-generation service. Each operation
// renders one fixed prompt template, sends a single request, and leniently
// parses the JSON the model was asked to embed in its reply. Malformed model
// output degrades to a raw-text result; only transport, auth, and missing
// configuration are errors.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	messagesPath   = "/v1/messages"

	// Fixed protocol version header required by the messages endpoint.
	apiVersion = "2023-06-01"

	// DefaultModel is used unless the caller overrides it.
	DefaultModel = "claude-3-5-sonnet-20241022"
)

// Client is an abstraction over text-generation providers.
type Client interface {
	// Complete sends one prompt and returns the first content block's text.
	Complete(ctx context.Context, prompt string, maxTokens int) (*Completion, error)
}

// Completion is the raw outcome of one generation request.
type Completion struct {
	RequestID uuid.UUID
	Text      string
}

// AnthropicClient implements Client against the messages endpoint.
type AnthropicClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures an AnthropicClient.
type Option func(*AnthropicClient)

// WithBaseURL overrides the service endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *AnthropicClient) { c.baseURL = url }
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *AnthropicClient) { c.httpClient = hc }
}

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(c *AnthropicClient) { c.model = model }
}

// NewAnthropicClient builds a client. A missing API key is a *ConfigError;
// nothing is sent until Complete is called.
func NewAnthropicClient(apiKey string, opts ...Option) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, &ConfigError{Reason: "API key is missing; add it in Settings"}
	}
	c := &AnthropicClient{
		apiKey:     apiKey,
		model:      DefaultModel,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single user-role message and returns the first content
// block's text. One outbound request per invocation; no retry, no timeout
// beyond the transport default.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (*Completion, error) {
	body, err := json.Marshal(messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		var ae apiError
		if json.Unmarshal(respBody, &ae) == nil && ae.Error.Message != "" {
			msg = ae.Error.Message
		}
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: msg}
	}

	var mr messageResponse
	if err := json.Unmarshal(respBody, &mr); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: "unreadable response body", Err: err}
	}
	if len(mr.Content) == 0 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: "response contained no content blocks"}
	}

	return &Completion{RequestID: uuid.New(), Text: mr.Content[0].Text}, nil
}
