// Package llm selects a text-generation provider by name.
package llm

import (
	"fmt"
	"os"

	"github.com/lifechronicles/chronicler/internal/gemini"
	"github.com/lifechronicles/chronicler/internal/ollama"
	"github.com/lifechronicles/chronicler/internal/openai"
	"github.com/lifechronicles/chronicler/internal/providers"
)

// ForProvider returns the provider registered under the given name.
// An empty name falls back to the CHRONICLER_PROVIDER environment
// variable, then to ollama.
func ForProvider(name string) (providers.Provider, error) {
	if name == "" {
		name = os.Getenv("CHRONICLER_PROVIDER")
	}
	if name == "" {
		name = "ollama"
	}

	switch name {
	case "gemini":
		return gemini.New(), nil
	case "openai":
		return openai.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// DefaultModel returns the default model for a provider, overridable via
// environment.
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}
