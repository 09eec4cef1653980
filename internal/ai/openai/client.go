// Package openai implements the text-generation client over the OpenAI
// chat-completions API using net/http directly.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/azim128/jobify/internal/ai"
	"github.com/azim128/jobify/internal/shared/apperr"
)

var apiURL = "https://api.openai.com/v1/chat/completions"

const (
	temperature = 0.7
	maxTokens   = 1000
)

// Client implements ai.Client using OpenAI chat completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs the client. The timeout bounds the whole request;
// there is no automatic retry.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("OPENAI_MODEL is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends one JSON-constrained completion request.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, ai.Usage, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", ai.Usage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", ai.Usage{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", ai.Usage{}, mapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ai.Usage{}, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return "", ai.Usage{}, apperr.Configuration("Invalid API key configuration")
	case http.StatusTooManyRequests:
		return "", ai.Usage{}, apperr.RateLimited("Rate limit exceeded. Please try again later")
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ai.Usage{}, apperr.Wrap(apperr.KindUpstream, "Invalid response from AI service", err)
	}
	if parsed.Error != nil {
		return "", ai.Usage{}, apperr.Upstream(fmt.Sprintf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type))
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ai.Usage{}, apperr.Upstream("Invalid response from AI service")
	}

	var usage ai.Usage
	if parsed.Usage != nil {
		usage = ai.Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), usage, nil
}

// mapTransportError classifies connection and deadline failures.
func mapTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) || strings.Contains(err.Error(), "connection refused") {
		return apperr.Wrap(apperr.KindUnavailable, "Could not connect to AI service. Please check your internet connection", err)
	}
	return err
}

var _ ai.Client = (*Client)(nil)
