package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/taxolabs/taxo/internal/models"
)

// classifyPrompt renders the classification instruction for the model.
// The model is asked for bare JSON; parseJSON strips code fences anyway
// because models routinely add them.
func classifyPrompt(categories []models.Category, text string) string {
	var b strings.Builder
	b.WriteString("You are a classification assistant. Analyze the text and choose the most appropriate category.\n\n")
	b.WriteString("## Categories\n\n")

	for _, c := range categories {
		fmt.Fprintf(&b, "### %s (id: %s)\n%s\n", c.Name, c.ID, c.Description)
		if len(c.Examples) > 0 {
			b.WriteString("Examples:\n")
			for _, e := range c.Examples {
				fmt.Fprintf(&b, "- %q\n", e)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Text to classify\n\n%q\n\n", text)
	b.WriteString("## Instructions\n\n")
	b.WriteString("Respond ONLY with valid JSON (no markdown, no text before/after):\n\n")
	b.WriteString("{\n")
	b.WriteString("  \"categoryId\": \"<chosen category id>\",\n")
	b.WriteString("  \"confidence\": \"<confidence in the choice: 'low' | 'medium' | 'high'>\",\n")
	b.WriteString("  \"explanation\": \"<clear and concise explanation in English>\"\n")
	b.WriteString("}")

	return b.String()
}

// suggestPrompt renders the category-suggestion instruction.
func suggestPrompt(examples []string, existing []models.Category) string {
	var b strings.Builder
	b.WriteString("You are helping a user organize texts into categories.\n\n")
	b.WriteString("## Example texts that should belong to one new category\n\n")
	for _, e := range examples {
		fmt.Fprintf(&b, "- %q\n", e)
	}
	if len(existing) > 0 {
		b.WriteString("\n## Existing categories (the new one must not overlap with these)\n\n")
		for _, c := range existing {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
		}
	}
	b.WriteString("\n## Instructions\n\n")
	b.WriteString("Propose a single new category covering the examples. ")
	b.WriteString("Respond ONLY with valid JSON (no markdown, no text before/after):\n\n")
	b.WriteString("{\n")
	b.WriteString("  \"name\": \"<short category name>\",\n")
	b.WriteString("  \"description\": \"<one or two sentences describing what belongs in it>\"\n")
	b.WriteString("}")

	return b.String()
}

// parseJSON strips optional Markdown code fences from raw model output and
// unmarshals the remainder into v.
func parseJSON(raw string, v any) error {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("llm: unparseable model output: %w", err)
	}
	return nil
}

// parseClassifyResult decodes and sanity-checks a classification response.
func parseClassifyResult(raw string) (*ClassifyResult, error) {
	var res ClassifyResult
	if err := parseJSON(raw, &res); err != nil {
		return nil, err
	}
	if !res.Confidence.Valid() {
		return nil, fmt.Errorf("llm: unknown confidence %q", res.Confidence)
	}
	return &res, nil
}

// parseSuggestion decodes a category-suggestion response.
func parseSuggestion(raw string) (*Suggestion, error) {
	var s Suggestion
	if err := parseJSON(raw, &s); err != nil {
		return nil, err
	}
	if s.Name == "" || s.Description == "" {
		return nil, fmt.Errorf("llm: suggestion missing name or description")
	}
	return &s, nil
}
