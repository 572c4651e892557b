package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiChatModel = "gemini-1.5-flash-latest"

// GeminiClient answers questions through the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient constructs a long-lived Gemini-backed client. An empty
// model selects the default chat model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if model == "" {
		model = defaultGeminiChatModel
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Chat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	model := c.client.GenerativeModel(c.model)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	temp := float32(chatTemperature)
	maxTokens := int32(maxOutputTokens)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("gemini GenerateContent failed: %w", err)}
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{Err: fmt.Errorf("gemini response had no valid candidates")}
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}

	if responseText.Len() == 0 {
		return "", &UpstreamError{Err: fmt.Errorf("gemini response contained no text parts")}
	}
	return responseText.String(), nil
}

func (c *GeminiClient) Close() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}
