package openai

import (
	"context"
	"errors"

	openaiapi "github.com/sashabaranov/go-openai"

	"legal-intake-bot/internal/domain"
	"legal-intake-bot/internal/usecase/consultation"
)

type Client struct {
	api *openaiapi.Client
}

func NewClient(token string) *Client {
	return &Client{
		api: openaiapi.NewClient(token),
	}
}

// NewClientWithBaseURL points the client at an OpenAI-compatible server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	cfg := openaiapi.DefaultConfig(token)
	cfg.BaseURL = baseURL
	return &Client{
		api: openaiapi.NewClientWithConfig(cfg),
	}
}

func (c *Client) Complete(ctx context.Context, req consultation.Request) (string, error) {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:    req.Model,
		Stream:   false,
		Messages: toAPIMessages(req.Messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned empty response")
	}
	if resp.Choices[0].Message.Content == "" {
		return "", errors.New("openai returned empty message")
	}

	return resp.Choices[0].Message.Content, nil
}

func toAPIMessages(msgs []domain.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return res
}
