package compose

import "fmt"

// LanguageMixingError is terminal: the provider kept producing
// source-language content in a non-English target across every
// allowed retry.
type LanguageMixingError struct {
	Field    string
	Attempts int
}

func (e *LanguageMixingError) Error() string {
	return fmt.Sprintf("language mixing detected in %s after %d attempts", e.Field, e.Attempts)
}

// StoryGenerationError is terminal: neither the verifier output nor the
// generator output parsed as a valid story. A day story has no templated
// substitute because its structure depends on the photo set.
type StoryGenerationError struct {
	Err error
}

func (e *StoryGenerationError) Error() string {
	return fmt.Sprintf("story generation failed: %v", e.Err)
}

func (e *StoryGenerationError) Unwrap() error { return e.Err }
