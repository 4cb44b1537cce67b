// Package gemini is a thin HTTP client for the generative-text backend.
// The backend is treated as an opaque text-completion capability: a
// prompt goes in, a string comes out.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

var ErrMissingEndpoint = errors.New("GEMINI_ENDPOINT not configured")

const (
	defaultModel       = "gemini-1.5-flash"
	defaultMaxTokens   = 512
	defaultTemperature = 0.2
)

// Config holds the completion backend settings
type Config struct {
	Endpoint    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewConfigFromEnv reads the backend settings from the environment
func NewConfigFromEnv() Config {
	maxTokens, _ := strconv.Atoi(getEnv("GEMINI_MAX_TOKENS", "512"))
	timeout, _ := strconv.Atoi(getEnv("GEMINI_TIMEOUT_SECONDS", "15"))

	return Config{
		Endpoint:    os.Getenv("GEMINI_ENDPOINT"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       getEnv("GEMINI_MODEL", defaultModel),
		MaxTokens:   maxTokens,
		Temperature: defaultTemperature,
		Timeout:     time.Duration(timeout) * time.Second,
	}
}

// Client calls the completion endpoint with bearer auth
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a completion client from the config
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// completionResponse covers the response shapes the provider gateway may
// return; the first populated field wins.
type completionResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices,omitempty"`
	Result string `json:"result,omitempty"`
}

// Complete sends the prompt and returns the generated text. The call is
// bounded by both the client timeout and the caller's context.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.Endpoint == "" {
		return "", ErrMissingEndpoint
	}

	body, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Prompt:      prompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion endpoint: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned %d: %s", res.StatusCode, string(raw))
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}

	if len(parsed.Choices) > 0 {
		if parsed.Choices[0].Message != nil && parsed.Choices[0].Message.Content != "" {
			return parsed.Choices[0].Message.Content, nil
		}
		if parsed.Choices[0].Text != "" {
			return parsed.Choices[0].Text, nil
		}
	}
	if parsed.Result != "" {
		return parsed.Result, nil
	}

	return "", errors.New("completion response contained no text")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
