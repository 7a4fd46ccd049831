// Package generation wraps the third-party chat-completion API behind a
// small interface returning raw model text.
package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// ErrUpstreamUnavailable means the generation service could not be
// reached (transport failure, timeout, or persistent 5xx). Unlike
// malformed output, this class is retried a bounded number of times
// before being reported.
var ErrUpstreamUnavailable = errors.New("generation service unavailable")

const maxRetries = 2

// Generator produces raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient is the production Generator backed by the OpenAI chat
// completion API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewOpenAIClient creates a generation client.
func NewOpenAIClient(apiKey, model string, timeout time.Duration, log zerolog.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		log:     log.With().Str("component", "generation").Logger(),
	}
}

// Generate sends the prompt and returns the raw completion text. The
// call carries an explicit timeout; transient failures are retried with
// exponential backoff, client-side API errors are not.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var content string

	op := func() error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a quiz question generator. Generate multiple choice questions with exactly 4 options each.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
		if err != nil {
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 && apiErr.HTTPStatusCode != 429 {
				// Bad request, auth failure etc. Retrying won't help.
				return backoff.Permanent(err)
			}
			c.log.Warn().Err(err).Msg("completion attempt failed, will retry")
			return err
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(errors.New("completion returned no choices"))
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 && apiErr.HTTPStatusCode != 429 {
			return "", fmt.Errorf("create completion: %w", err)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return content, nil
}
