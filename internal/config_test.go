package internal

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestLLMConfig_EmptyProviderDefaultsGemini(t *testing.T) {
	cfg := LLMConfig{APIKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("gemini with key should pass: %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("provider = %q, want %q", cfg.Provider, ProviderGemini)
	}
}

func TestLLMConfig_MissingAPIKey(t *testing.T) {
	cfg := LLMConfig{Provider: ProviderGemini}
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing api key should fail")
	}
}

func TestLLMConfig_OpenAIRequiresEndpointAndModel(t *testing.T) {
	cfg := LLMConfig{Provider: ProviderOpenAI, APIKey: "k"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("openai without endpoint/model should fail")
	}

	cfg.Endpoint = "https://api.example.com/v1/chat/completions"
	cfg.Model = "gpt-4o-mini"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete openai config should pass: %v", err)
	}
}

func TestLLMConfig_InvalidProvider(t *testing.T) {
	cfg := LLMConfig{Provider: "oracle", APIKey: "k"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid provider should fail validation")
	}
}

func TestLLMConfig_Timeout(t *testing.T) {
	cfg := LLMConfig{}
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", got)
	}
	cfg.TimeoutSeconds = 5
	if got := cfg.Timeout(); got != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", got)
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.LLM.APIKey = "k"
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestFullConfig_DefaultNeedsAPIKey(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("default config without api key should fail")
	}
	cfg.LLM.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with api key should pass: %v", err)
	}
}
