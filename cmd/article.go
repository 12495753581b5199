package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifechronicles/chronicler/internal/exif"
	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/vision"
)

func newArticleCmd() *cobra.Command {
	var (
		lang      string
		analysisP string
		exifP     string
	)

	cmd := &cobra.Command{
		Use:   "article [image]",
		Short: "Generate an article from a photo or a saved analysis",
		Long: `Generates a single-photo article and prints it as JSON.

With an image argument the photo is analyzed first using the configured
vision provider. With --analysis a saved analysis JSON file is used
instead, which avoids the vision call.`,
		Example: `  # Analyze a photo and write an article in English
  chronicler article photo.jpg

  # Tamil article from a saved analysis
  chronicler article --analysis analysis.json --lang ta`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var analysis models.PhotoAnalysis
			switch {
			case analysisP != "":
				data, err := os.ReadFile(analysisP)
				if err != nil {
					return fmt.Errorf("failed to read analysis file: %w", err)
				}
				if err := json.Unmarshal(data, &analysis); err != nil {
					return fmt.Errorf("failed to parse analysis file: %w", err)
				}
			case len(args) == 1:
				analysis, err = vision.NewService().AnalyzeImage(args[0], cfg.Provider, cfg.Model)
				if err != nil {
					return fmt.Errorf("failed to analyze image: %w", err)
				}
			default:
				return fmt.Errorf("either an image argument or --analysis is required")
			}

			var exifCtx models.ExifContext
			if exifP != "" {
				data, err := os.ReadFile(exifP)
				if err != nil {
					return fmt.Errorf("failed to read exif file: %w", err)
				}
				var raw exif.RawFields
				if err := json.Unmarshal(data, &raw); err != nil {
					return fmt.Errorf("failed to parse exif file: %w", err)
				}
				exifCtx = exif.Context(raw)
			}

			composer, err := newComposer(cfg)
			if err != nil {
				return err
			}

			article, err := composer.ComposeArticle(cmd.Context(), analysis, exifCtx, lang)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(article)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "Target language (en or ta)")
	cmd.Flags().StringVar(&analysisP, "analysis", "", "Path to a saved analysis JSON file")
	cmd.Flags().StringVar(&exifP, "exif", "", "Path to a raw EXIF JSON file")

	return cmd
}
