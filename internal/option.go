package internal

import "github.com/taxolabs/taxo/internal/llm"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	llm    llm.Client
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLLMClient overrides the collaborator client built from the
// configuration. Used by tests and tooling.
func WithLLMClient(client llm.Client) Option {
	return func(a *application) {
		a.llm = client
	}
}
