// Package llm provides the generation client: a narrow completion
// interface over the hosted text model, plus timeout and retry policy.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Payload is the request shape at the text-completion boundary. The core
// depends on nothing else about the remote protocol.
type Payload struct {
	SystemInstructions string
	UserPayload        string
}

// Completer is the capability interface over the remote text-completion
// service. Deterministic fakes substitute for it in tests.
type Completer interface {
	Complete(ctx context.Context, p Payload) (string, error)
	Close() error
}

// GeminiCompleter implements Completer for Google Gemini.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a Gemini-backed completer.
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete sends the payload to the model and returns the literal text
// produced. No semantic interpretation happens here.
func (c *GeminiCompleter) Complete(ctx context.Context, p Payload) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.4)
	if p.SystemInstructions != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(p.SystemInstructions)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(p.UserPayload))
	if err != nil {
		return "", err
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the underlying client.
func (c *GeminiCompleter) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
