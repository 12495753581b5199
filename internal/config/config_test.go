package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Port != "8888" || cfg.Provider != "ollama" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `port: "9000"
provider: openai
model: gpt-4o
marker_words:
  - the
  - fading
dictionary:
  sun: கதிரவன்
nominatim:
  base_url: https://nominatim.example.org
  user_agent: test-agent
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9000" || cfg.Provider != "openai" || cfg.Model != "gpt-4o" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.MarkerWords) != 2 || cfg.MarkerWords[0] != "the" {
		t.Errorf("MarkerWords = %v", cfg.MarkerWords)
	}
	if cfg.Dictionary["sun"] != "கதிரவன்" {
		t.Errorf("Dictionary = %v", cfg.Dictionary)
	}
	if cfg.Nominatim.BaseURL != "https://nominatim.example.org" {
		t.Errorf("Nominatim = %+v", cfg.Nominatim)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("CHRONICLER_PROVIDER", "gemini")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7777" {
		t.Errorf("Port = %q, want env override", cfg.Port)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want env override", cfg.Provider)
	}
}
