package mask

import (
	"strings"
	"testing"
)

func TestMaskRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"title-case name", "A quiet walk through Marina Beach at dusk"},
		{"multi-word name", "The lights of New York City stretch to the horizon"},
		{"acronym", "A NASA logo visible on the wall"},
		{"digit-prefixed token", "Filmed in 4K resolution"},
		{"digit-suffixed token", "A laptop running Windows11 on the desk"},
		{"mixed nouns", "Sunset over Chennai near the ECR highway"},
		{"no proper nouns", "waves breaking on the shore under grey skies"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked, m := Mask(tt.input)
			restored := m.Restore(masked)
			if restored != tt.input {
				t.Errorf("round trip changed text:\n input   %q\n restored %q", tt.input, restored)
			}
		})
	}
}

func TestMaskReplacesDetectedSpans(t *testing.T) {
	masked, m := Mask("Sunset over Chennai near NASA headquarters")

	if m.Len() == 0 {
		t.Fatal("expected at least one masked span")
	}
	if strings.Contains(masked, "Chennai") {
		t.Errorf("masked text still contains proper noun: %q", masked)
	}
	if strings.Contains(masked, "NASA") {
		t.Errorf("masked text still contains acronym: %q", masked)
	}
	if !PlaceholderPattern.MatchString(masked) {
		t.Errorf("masked text has no placeholder tokens: %q", masked)
	}
}

func TestMaskPlaceholderOrder(t *testing.T) {
	_, m := Mask("From Madurai to Chennai by train")

	placeholders := m.Placeholders()
	if len(placeholders) < 2 {
		t.Fatalf("expected at least 2 placeholders, got %d", len(placeholders))
	}

	first, ok := m.Original(placeholders[0])
	if !ok {
		t.Fatalf("no original recorded for %s", placeholders[0])
	}
	if first != "From Madurai" && first != "Madurai" {
		t.Errorf("unexpected first span: %q", first)
	}
}

func TestMaskCountersAreRequestScoped(t *testing.T) {
	maskedA, _ := Mask("Chennai at dawn")
	maskedB, _ := Mask("Madurai at dawn")

	if !strings.Contains(maskedA, "§§PN0§§") {
		t.Errorf("first call should start numbering at 0: %q", maskedA)
	}
	if !strings.Contains(maskedB, "§§PN0§§") {
		t.Errorf("each call should restart numbering at 0: %q", maskedB)
	}
}

func TestRestoreIdempotent(t *testing.T) {
	input := "Sunday morning at Marina Beach"
	masked, m := Mask(input)

	once := m.Restore(masked)
	twice := m.Restore(once)
	if once != twice {
		t.Errorf("Restore not idempotent: first %q, second %q", once, twice)
	}
}

func TestMaskDuplicateSpans(t *testing.T) {
	masked, m := Mask("Chennai by day, Chennai by night")

	if strings.Contains(masked, "Chennai") {
		t.Errorf("duplicate occurrences should all be masked: %q", masked)
	}
	restored := m.Restore(masked)
	if restored != "Chennai by day, Chennai by night" {
		t.Errorf("round trip with duplicates failed: %q", restored)
	}
}
