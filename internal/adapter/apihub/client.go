// Package apihub talks to the chat relay that proxies model calls behind a
// single POST endpoint.
package apihub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"legal-intake-bot/internal/domain"
	"legal-intake-bot/internal/usecase/consultation"
)

const DefaultURL = "https://apihub.staging.appply.link/chatgpt"

// ErrEmptyReply is returned when a 2xx body carries no reply text.
var ErrEmptyReply = errors.New("apihub: response field missing or empty")

// StatusError reports a non-2xx answer from the relay.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("apihub: status %d", e.StatusCode)
	}
	return fmt.Sprintf("apihub: status %d: %s", e.StatusCode, e.Body)
}

type chatRequest struct {
	Messages []domain.Message `json:"messages"`
	Model    string           `json:"model"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) Complete(ctx context.Context, req consultation.Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Messages: req.Messages,
		Model:    req.Model,
	})
	if err != nil {
		return "", fmt.Errorf("apihub: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("apihub: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("apihub: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("apihub: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 512)}
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("apihub: decode response: %w", err)
	}
	if out.Response == nil || *out.Response == "" {
		return "", ErrEmptyReply
	}

	return *out.Response, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
