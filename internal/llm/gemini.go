package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/taxolabs/taxo/internal/models"
)

// Gemini implements Client on top of Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed collaborator.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm: Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Classify picks the best-fitting category for text.
func (g *Gemini) Classify(ctx context.Context, categories []models.Category, text string) (*ClassifyResult, error) {
	raw, err := g.generate(ctx, classifyPrompt(categories, text))
	if err != nil {
		return nil, err
	}
	return parseClassifyResult(raw)
}

// SuggestCategory proposes a category covering the given examples.
func (g *Gemini) SuggestCategory(ctx context.Context, examples []string, existing []models.Category) (*Suggestion, error) {
	raw, err := g.generate(ctx, suggestPrompt(examples, existing))
	if err != nil {
		return nil, err
	}
	return parseSuggestion(raw)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("llm: Gemini generate failed: %w", err)
	}
	out := resp.Text()
	if out == "" {
		return "", fmt.Errorf("llm: empty Gemini response")
	}
	return out, nil
}
