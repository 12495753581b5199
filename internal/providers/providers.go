package providers

import (
	"context"
)

// Config represents one generation request to an LLM provider.
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for a text-generation backend. The
// returned text is untrusted: callers must JSON-parse and validate it
// before use.
type Provider interface {
	GenerateText(ctx context.Context, config Config) (string, error)
}
