// Package llm provides the language-model fallback agent used when a
// deterministic plan is rejected by validation. Its output is opaque text,
// never structurally trusted.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrAgentDisabled is returned by the Disabled agent and signals that no
// fallback answer is available.
var ErrAgentDisabled = errors.New("llm agent is disabled")

// Agent answers a question directly when the planner's output was rejected.
// planHint carries the rejected plan's context so the model can reuse the
// table and filter analysis.
type Agent interface {
	Answer(ctx context.Context, question, planHint string) (string, error)
}

// Disabled is the no-op Agent wired when no fallback is configured.
type Disabled struct{}

// Answer always fails with ErrAgentDisabled.
func (Disabled) Answer(context.Context, string, string) (string, error) {
	return "", ErrAgentDisabled
}

// Config holds the connection settings for an OpenAI-compatible endpoint.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a Client; unset fields get conservative defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

const systemPrompt = `You are a quick-commerce price comparison assistant with access to a MySQL
database of products, platforms, prices, discounts, and inventory. Answer the
user's question concisely using the analysis context when provided.`

// Answer sends the question with the plan hint as context and returns the
// model's text.
func (c *Client) Answer(ctx context.Context, question, planHint string) (string, error) {
	content := question
	if planHint != "" {
		content = fmt.Sprintf("%s\n\nQuery analysis context:\n%s", question, planHint)
	}

	reqBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	}

	respBody, err := c.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var response chatResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("completion API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return response.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, endpoint string, reqBody interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
