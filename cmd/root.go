package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lifechronicles/chronicler/internal/compose"
	"github.com/lifechronicles/chronicler/internal/config"
	"github.com/lifechronicles/chronicler/internal/llm"
	"github.com/lifechronicles/chronicler/internal/translate"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chronicler",
		Short: "Photo-to-article generation tool with LLM-powered writing",
		Long: `Chronicler turns photo analyses into illustrated articles and day stories.

It composes grounded, language-consistent text from vision analysis and EXIF
context, in English or Tamil, as single-photo articles or multi-photo day
stories served over a web API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to YAML config file")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newArticleCmd())
	cmd.AddCommand(newStoryCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}

// loadConfig reads the config file named by the persistent --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newComposer builds the generation pipeline from config: provider,
// translator with any dictionary overrides, and marker-word overrides.
func newComposer(cfg config.Config) (*compose.Composer, error) {
	provider, err := llm.ForProvider(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = llm.DefaultModel(cfg.Provider)
	}

	translator := translate.New(provider, model, translate.WithDictionary(cfg.Dictionary))

	return compose.New(provider, model,
		compose.WithTranslator(translator),
		compose.WithMarkerWords(cfg.MarkerWords),
		compose.WithTemperature(cfg.Temperature),
	), nil
}
