// Package config loads application settings from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the server and the generation
// pipeline. Every field has a sensible default so a missing config file
// is not an error.
type Config struct {
	Port        string  `yaml:"port"`
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`

	// MarkerWords overrides the English marker-word list used by the
	// language-purity check.
	MarkerWords []string `yaml:"marker_words"`

	// Dictionary adds or overrides English to Tamil fallback entries.
	Dictionary map[string]string `yaml:"dictionary"`

	Nominatim NominatimConfig `yaml:"nominatim"`
}

// NominatimConfig configures the geocoding client.
type NominatimConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
	Email     string `yaml:"email"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:        "8888",
		Provider:    "ollama",
		Temperature: 0.7,
	}
}

// Load reads configuration from the given YAML path, then applies
// environment overrides. A missing file yields defaults; a malformed
// file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			slog.Info("Config file not found, using defaults", "path", path)
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file: %w", err)
			}
			slog.Info("Loaded config file", "path", path)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("CHRONICLER_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("CHRONICLER_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NOMINATIM_BASE"); v != "" {
		cfg.Nominatim.BaseURL = v
	}
	if v := os.Getenv("NOMINATIM_USER_AGENT"); v != "" {
		cfg.Nominatim.UserAgent = v
	}
	if v := os.Getenv("NOMINATIM_EMAIL"); v != "" {
		cfg.Nominatim.Email = v
	}
}
