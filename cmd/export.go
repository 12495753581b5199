package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lifechronicles/chronicler/internal/export"
)

func newExportCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "export [input.jsonl] [output]",
		Short: "Convert exported records between JSONL and Parquet",
		Long: `Converts a JSONL export of articles or stories into another format.

The output format is chosen by file extension (.parquet or .jsonl).`,
		Example: `  # Convert an article export to Parquet
  chronicler export articles.jsonl articles.parquet

  # Convert a story export
  chronicler export stories.jsonl stories.parquet --kind stories`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			switch kind {
			case "articles":
				records, err := export.ReadArticles(input)
				if err != nil {
					return err
				}
				return export.WriteArticles(records, output)
			case "stories":
				records, err := export.ReadStories(input)
				if err != nil {
					return err
				}
				return export.WriteStories(records, output)
			default:
				return fmt.Errorf("unsupported kind: %s (supported: articles, stories)", kind)
			}
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "articles", "Record kind (articles or stories)")

	return cmd
}
