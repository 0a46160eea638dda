// Package render maps extraction payloads to display models. It is a pure
// mapping layer: no network, no storage, no styling — the TUI and CLI decide
// how the model looks on screen.
package render

import (
	"fmt"

	"github.com/studiowebux/extractcli/internal/types"
)

const (
	// CachedGlyph marks a result served from the server cache
	CachedGlyph = "⚡ Cached"
	// FreshGlyph marks a newly fetched extraction
	FreshGlyph = "⬇ Fetched"
)

// Field is one labeled line of the result panel.
type Field struct {
	Label string
	Value string
}

// ResultView is the display model for a successful extraction.
type ResultView struct {
	Glyph     string
	MatchType string
	Fields    []Field
}

// Success builds the display model for a successful extraction. Optional
// fields appear only when the server provided them.
func Success(result *types.ExtractionResult) ResultView {
	view := ResultView{
		Glyph:     FreshGlyph,
		MatchType: result.MatchType,
	}
	if result.Cached {
		view.Glyph = CachedGlyph
	}

	duration := result.Duration
	if duration == "" {
		duration = "Unknown"
	}

	view.Fields = []Field{
		{Label: "Title", Value: result.Title},
		{Label: "Type", Value: result.FileType},
		{Label: "Duration", Value: duration},
		{Label: "Processing", Value: FormatProcessingTime(result.ProcessingTime)},
	}

	if result.FileSizeFormatted != "" {
		view.Fields = append(view.Fields, Field{Label: "Size", Value: result.FileSizeFormatted})
	}
	if result.Source != "" {
		view.Fields = append(view.Fields, Field{Label: "Source", Value: result.Source})
	}
	if result.Confidence != nil {
		view.Fields = append(view.Fields, Field{Label: "Confidence", Value: FormatConfidence(*result.Confidence)})
	}
	view.Fields = append(view.Fields, Field{Label: "File ID", Value: result.FileID})

	return view
}

// Failure builds the single-line error display.
func Failure(message string) string {
	return fmt.Sprintf("✗ %s", message)
}

// FormatConfidence renders a [0,1] confidence as a percentage with one
// decimal place.
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

// FormatProcessingTime renders the server-reported processing time in
// seconds.
func FormatProcessingTime(seconds float64) string {
	return fmt.Sprintf("%.2fs", seconds)
}
