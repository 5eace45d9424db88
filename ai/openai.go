// Package ai provides the production AI completion capability backed by
// the OpenAI API. The engine only sees the types.Completer interface, so
// tests swap in fakes.
package ai

import (
	"context"

	"github.com/juju/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akulearn/sandbox/types"
)

var _ types.Completer = &Client{}

type Client struct {
	client      openai.Client
	requestOpts []option.RequestOption
}

type Option func(*Client)

// WithAPIKey overrides the OPENAI_API_KEY environment variable.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.requestOpts = append(c.requestOpts, option.WithAPIKey(apiKey))
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.requestOpts = append(c.requestOpts, option.WithBaseURL(baseURL))
	}
}

// New builds a completion client. With no options the API key comes from
// the environment, matching the openai-go defaults.
func New(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	c.client = openai.NewClient(c.requestOpts...)
	return c
}

func (c *Client) Complete(ctx context.Context, req types.CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.Prompt),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	params.Temperature = openai.Float(req.Temperature)

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errors.Trace(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NotFoundf("completion choices")
	}
	return resp.Choices[0].Message.Content, nil
}
