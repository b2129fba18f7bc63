// Package enhance optionally fills a lead's missing fields by asking an
// external text-completion service. Everything here is best-effort: parse or
// network failures are logged and swallowed, never propagated.
package enhance

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

// Completer sends a free-form prompt and returns free-form text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HTTPCompleter talks to an OpenAI-style chat completions endpoint.
type HTTPCompleter struct {
	Endpoint string
	APIKey   string
	Model    string
	hc       *http.Client
}

func NewHTTPCompleter(endpoint, apiKey, model string) (*HTTPCompleter, error) {
	if endpoint == "" {
		return nil, errors.New("completion endpoint is not configured")
	}
	if apiKey == "" {
		return nil, errors.New("completion API key is not configured")
	}
	return &HTTPCompleter{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    model,
		hc:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *HTTPCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion post: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return "", fmt.Errorf("completion status %d: %s", res.StatusCode, string(b))
	}

	var out chatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("completion decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
