package quality

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportFile is the on-disk shape of a saved evaluation run.
type ReportFile struct {
	Lang      string `yaml:"lang"`
	StoryDate string `yaml:"storydate,omitempty"`
	Timestamp string `yaml:"timestamp"`
	Report    Report `yaml:"report"`
}

// SaveToYAML writes an evaluation report to a timestamped YAML file in the
// evals/ directory and returns the path.
func SaveToYAML(lang, storyDate string, report Report) (string, error) {
	if err := os.MkdirAll("evals", 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	file := ReportFile{
		Lang:      lang,
		StoryDate: storyDate,
		Timestamp: timestamp,
		Report:    report,
	}

	filename := fmt.Sprintf("evals/story-%s.yaml", timestamp)

	data, err := yaml.Marshal(&file)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	return absPath, nil
}
