package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifechronicles/chronicler/internal/compose"
	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/quality"
)

func newEvalCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "eval [input.json] [story.json]",
		Short: "Evaluate a generated story against its input",
		Long: `Scores a generated day story against the story input it was composed
from: section ordering, photo coverage, place-gate compliance, and
language purity for non-English stories.`,
		Example: `  # Print the quality report
  chronicler eval input.json story.json

  # Also save the report to evals/
  chronicler eval input.json story.json --save`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var input models.StoryInput
			if err := readJSONFile(args[0], &input); err != nil {
				return err
			}
			var story models.GeneratedStory
			if err := readJSONFile(args[1], &story); err != nil {
				return err
			}

			markers := cfg.MarkerWords
			if len(markers) == 0 {
				markers = compose.DefaultMarkerWords()
			}
			report := quality.Evaluate(input, story, markers)

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(report); err != nil {
				return err
			}

			if save {
				path, err := quality.SaveToYAML(input.Lang, input.StoryDate, report)
				if err != nil {
					return err
				}
				fmt.Printf("Evaluation report saved to: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the report to the evals/ directory")

	return cmd
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
