package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/taxolabs/taxo/internal/models"
)

func TestClassifyPrompt_ContainsCategoriesAndText(t *testing.T) {
	cats := []models.Category{
		{ID: "cat-1", Name: "billing", Description: "payments and refunds", Examples: []string{"refund please"}},
		{ID: "cat-2", Name: "outage", Description: "service is down"},
	}
	p := classifyPrompt(cats, "my payment bounced")

	for _, want := range []string{"billing", "cat-1", "payments and refunds", `"refund please"`, "outage", "cat-2", "my payment bounced", "categoryId"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// Category without examples must not render an empty examples block.
	if strings.Contains(p, "cat-2)\nservice is down\nExamples:") {
		t.Error("empty examples block rendered for cat-2")
	}
}

func TestSuggestPrompt_ExistingCategoriesOptional(t *testing.T) {
	p := suggestPrompt([]string{"a", "b"}, nil)
	if strings.Contains(p, "Existing categories") {
		t.Error("existing categories section rendered with no categories")
	}
	p = suggestPrompt([]string{"a"}, []models.Category{{Name: "x", Description: "y"}})
	if !strings.Contains(p, "Existing categories") {
		t.Error("existing categories section missing")
	}
}

func TestParseClassifyResult_PlainJSON(t *testing.T) {
	res, err := parseClassifyResult(`{"categoryId":"cat-1","confidence":"high","explanation":"ok"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.CategoryID != "cat-1" || res.Confidence != models.ConfidenceHigh {
		t.Errorf("res = %+v", res)
	}
}

func TestParseClassifyResult_FencedJSON(t *testing.T) {
	raw := "```json\n{\"categoryId\":\"cat-2\",\"confidence\":\"low\",\"explanation\":\"meh\"}\n```"
	res, err := parseClassifyResult(raw)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if res.CategoryID != "cat-2" || res.Confidence != models.ConfidenceLow {
		t.Errorf("res = %+v", res)
	}
}

func TestParseClassifyResult_BadConfidence(t *testing.T) {
	if _, err := parseClassifyResult(`{"categoryId":"cat-1","confidence":"certain","explanation":""}`); err == nil {
		t.Error("unknown confidence should fail")
	}
}

func TestParseClassifyResult_Garbage(t *testing.T) {
	if _, err := parseClassifyResult("the category is probably billing"); err == nil {
		t.Error("non-JSON output should fail")
	}
}

func TestParseSuggestion(t *testing.T) {
	s, err := parseSuggestion("```\n{\"name\":\"billing\",\"description\":\"money\"}\n```")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != "billing" || s.Description != "money" {
		t.Errorf("s = %+v", s)
	}
	if _, err := parseSuggestion(`{"name":"","description":"x"}`); err == nil {
		t.Error("blank name should fail")
	}
}

// chatStub fakes an OpenAI-compatible chat-completions endpoint.
func chatStub(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAI_Classify(t *testing.T) {
	srv := chatStub(t, `{"categoryId":"cat-9","confidence":"medium","explanation":"fits"}`, http.StatusOK)

	c, err := NewOpenAI(srv.URL, "test-key", "test-model", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.Classify(context.Background(), []models.Category{{ID: "cat-9", Name: "n", Description: "d"}}, "text")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.CategoryID != "cat-9" || res.Confidence != models.ConfidenceMedium || res.Explanation != "fits" {
		t.Errorf("res = %+v", res)
	}
}

func TestOpenAI_SuggestCategory(t *testing.T) {
	srv := chatStub(t, `{"name":"spam","description":"unsolicited junk"}`, http.StatusOK)

	c, err := NewOpenAI(srv.URL, "test-key", "test-model", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	s, err := c.SuggestCategory(context.Background(), []string{"buy now!!"}, nil)
	if err != nil {
		t.Fatalf("SuggestCategory: %v", err)
	}
	if s.Name != "spam" {
		t.Errorf("name = %q", s.Name)
	}
}

func TestOpenAI_ErrorStatus(t *testing.T) {
	srv := chatStub(t, "", http.StatusUnauthorized)

	c, err := NewOpenAI(srv.URL, "test-key", "test-model", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Classify(context.Background(), nil, "text"); err == nil {
		t.Error("non-200 status should surface as error")
	}
}

func TestNewOpenAI_Validation(t *testing.T) {
	if _, err := NewOpenAI("", "k", "m", 0); err == nil {
		t.Error("missing endpoint should fail")
	}
	if _, err := NewOpenAI("http://x", "", "m", 0); err == nil {
		t.Error("missing key should fail")
	}
	if _, err := NewOpenAI("http://x", "k", "", 0); err == nil {
		t.Error("missing model should fail")
	}
}
