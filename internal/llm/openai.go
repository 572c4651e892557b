package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIChatModel = openai.GPT3Dot5Turbo

// OpenAIClient answers questions through the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs a long-lived OpenAI-backed client. An empty
// model selects the default chat model.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIChatModel
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClient) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: chatTemperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("openai chat completion failed: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Err: fmt.Errorf("openai returned no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Close() {}
