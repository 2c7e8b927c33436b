// Package inference sends single-turn completion requests to the model
// endpoint.
package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	openaiinfra "github.com/parleyhq/parley/internal/infrastructure/openai"
)

// fallbackReply stands in for a completion that came back without any choice
// text. The workflow still counts as a success in that case.
const fallbackReply = "Sorry, I could not generate a response."

// Error is an inference failure carrying the upstream HTTP status.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("inference request failed with status %d: %s", e.StatusCode, e.Message)
}

type Service struct {
	client *openai.Client
	model  string
}

func NewService(openAIService *openaiinfra.Service, model string) (*Service, error) {
	if openAIService == nil {
		return nil, fmt.Errorf("OpenAI service is required")
	}
	return newService(openAIService.GetClient(), model), nil
}

func newService(client *openai.Client, model string) *Service {
	return &Service{
		client: client,
		model:  model,
	}
}

// Complete sends the prompt as a single user-role message and returns the
// first choice's text. No history is carried between calls.
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &Error{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &Error{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
		}
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Warn().Str("model", s.model).Msg("Completion returned no choice text, using fallback reply")
		return fallbackReply, nil
	}

	return resp.Choices[0].Message.Content, nil
}
