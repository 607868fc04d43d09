package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taxolabs/taxo/internal/models"
)

// maxResponseBody caps collaborator responses to guard against runaway payloads.
const maxResponseBody = 1 << 20

// OpenAI implements Client against any OpenAI-compatible chat-completions
// endpoint (OpenAI itself, or a local proxy exposing the same shape).
type OpenAI struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// NewOpenAI creates an OpenAI-compatible collaborator. endpoint is the full
// chat-completions URL; timeout bounds each call at the transport level.
func NewOpenAI(endpoint, apiKey, model string, timeout time.Duration) (*OpenAI, error) {
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("llm: endpoint and API key are required")
	}
	if model == "" {
		return nil, fmt.Errorf("llm: model is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// Classify picks the best-fitting category for text.
func (o *OpenAI) Classify(ctx context.Context, categories []models.Category, text string) (*ClassifyResult, error) {
	raw, err := o.complete(ctx, classifyPrompt(categories, text))
	if err != nil {
		return nil, err
	}
	return parseClassifyResult(raw)
}

// SuggestCategory proposes a category covering the given examples.
func (o *OpenAI) SuggestCategory(ctx context.Context, examples []string, existing []models.Category) (*Suggestion, error) {
	raw, err := o.complete(ctx, suggestPrompt(examples, existing))
	if err != nil {
		return nil, err
	}
	return parseSuggestion(raw)
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.2,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: endpoint returned %s", resp.Status)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&result); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return result.Choices[0].Message.Content, nil
}
