package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifechronicles/chronicler/internal/models"
	"github.com/lifechronicles/chronicler/internal/place"
	"github.com/lifechronicles/chronicler/internal/storyinput"
)

type storyFile struct {
	Photos []storyinput.Photo   `json:"photos"`
	Place  *models.PlaceContext `json:"place,omitempty"`
}

func newStoryCmd() *cobra.Command {
	var (
		lang   string
		tone   string
		length string
	)

	cmd := &cobra.Command{
		Use:   "story [input.json]",
		Short: "Generate a day story from a set of photo analyses",
		Long: `Generates a multi-photo day story and prints it as JSON.

The input file holds the analyzed photos (with their EXIF context and
upload times) plus an optional place override. Photos are bucketed into
dayparts, ordered chronologically, and composed into one coherent story.`,
		Example: `  # English day story
  chronicler story day.json

  # Tamil diary-style story
  chronicler story day.json --lang ta --tone diary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read story input file: %w", err)
			}
			var file storyFile
			if err := json.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse story input file: %w", err)
			}
			if len(file.Photos) == 0 {
				return fmt.Errorf("story input has no photos")
			}

			placePhotos := make([]place.Photo, 0, len(file.Photos))
			for _, p := range file.Photos {
				placePhotos = append(placePhotos, place.Photo{MediaID: p.MediaID, Analysis: p.Analysis})
			}
			placeCtx := place.Resolve(placePhotos, file.Place)
			input := storyinput.Build(file.Photos, placeCtx, lang, tone, length)

			composer, err := newComposer(cfg)
			if err != nil {
				return err
			}

			story, err := composer.ComposeStory(cmd.Context(), input)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(story)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "Target language (en or ta)")
	cmd.Flags().StringVarP(&tone, "tone", "t", "reportage", "Story tone (reportage, travelogue, diary)")
	cmd.Flags().StringVar(&length, "length", "medium", "Story length (short, medium, long)")

	return cmd
}
