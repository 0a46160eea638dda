package render

import (
	"testing"

	"github.com/studiowebux/extractcli/internal/types"
)

func fieldValue(t *testing.T, view ResultView, label string) string {
	t.Helper()
	for _, f := range view.Fields {
		if f.Label == label {
			return f.Value
		}
	}
	t.Fatalf("field %q not found in %+v", label, view.Fields)
	return ""
}

func hasField(view ResultView, label string) bool {
	for _, f := range view.Fields {
		if f.Label == label {
			return true
		}
	}
	return false
}

func TestSuccessCachedResult(t *testing.T) {
	confidence := 0.837
	view := Success(&types.ExtractionResult{
		Cached:         true,
		MatchType:      "fuzzy",
		Confidence:     &confidence,
		Title:          "Test Song",
		FileType:       "audio",
		Duration:       "3:45",
		ProcessingTime: 0.12,
		FileID:         "FILE123",
	})

	if view.Glyph != CachedGlyph {
		t.Errorf("Glyph = %q, want %q", view.Glyph, CachedGlyph)
	}
	if view.MatchType != "fuzzy" {
		t.Errorf("MatchType = %q, want fuzzy", view.MatchType)
	}
	if got := fieldValue(t, view, "Confidence"); got != "83.7%" {
		t.Errorf("Confidence = %q, want 83.7%%", got)
	}
	if got := fieldValue(t, view, "Duration"); got != "3:45" {
		t.Errorf("Duration = %q, want 3:45", got)
	}
	if got := fieldValue(t, view, "Processing"); got != "0.12s" {
		t.Errorf("Processing = %q, want 0.12s", got)
	}
}

func TestSuccessFreshResult(t *testing.T) {
	view := Success(&types.ExtractionResult{
		Cached:            false,
		Title:             "Another Song",
		FileType:          "video",
		ProcessingTime:    42.5,
		FileSizeFormatted: "3.4 MB",
		Source:            "youtube",
		FileID:            "FILE456",
	})

	if view.Glyph != FreshGlyph {
		t.Errorf("Glyph = %q, want %q", view.Glyph, FreshGlyph)
	}
	if view.MatchType != "" {
		t.Errorf("MatchType = %q, want empty", view.MatchType)
	}
	if got := fieldValue(t, view, "Duration"); got != "Unknown" {
		t.Errorf("Duration = %q, want Unknown for missing duration", got)
	}
	if got := fieldValue(t, view, "Size"); got != "3.4 MB" {
		t.Errorf("Size = %q, want 3.4 MB", got)
	}
	if got := fieldValue(t, view, "Source"); got != "youtube" {
		t.Errorf("Source = %q, want youtube", got)
	}
	if hasField(view, "Confidence") {
		t.Error("Confidence field present without a confidence value")
	}
}

func TestSuccessOmitsAbsentOptionalFields(t *testing.T) {
	view := Success(&types.ExtractionResult{
		Title:          "Bare",
		FileType:       "audio",
		ProcessingTime: 1,
		FileID:         "F",
	})

	for _, label := range []string{"Size", "Source", "Confidence"} {
		if hasField(view, label) {
			t.Errorf("optional field %q rendered despite being absent", label)
		}
	}
}

func TestFailure(t *testing.T) {
	if got := Failure("Invalid API key"); got != "✗ Invalid API key" {
		t.Errorf("Failure = %q", got)
	}
}

func TestFormatConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.837, "83.7%"},
		{1, "100.0%"},
		{0, "0.0%"},
		{0.5, "50.0%"},
		{0.005, "0.5%"},
		{0.9999, "100.0%"},
	}
	for _, tt := range tests {
		if got := FormatConfidence(tt.in); got != tt.want {
			t.Errorf("FormatConfidence(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
