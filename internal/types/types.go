package types

import "time"

// FormSnapshot is the durable form state, written on every field change and
// restored once at startup. It is the only state persisted as JSON.
type FormSnapshot struct {
	APIKey string `json:"apiKey"`
	Query  string `json:"query"`
	Format string `json:"format"`
}

// ExtractResponse is the wire payload returned by GET /api/v1/extract on
// success (2xx). Cache hits carry match metadata, fresh extractions don't.
type ExtractResponse struct {
	Status     string         `json:"status,omitempty"`
	Cached     bool           `json:"cached"`
	MatchType  string         `json:"match_type,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
	Data       ExtractionData `json:"data"`
}

// ExtractionData is the nested data object of ExtractResponse.
type ExtractionData struct {
	Title             string  `json:"title"`
	FileID            string  `json:"file_id"`
	FileUniqueID      string  `json:"file_unique_id,omitempty"`
	FileType          string  `json:"file_type"`
	Duration          string  `json:"duration,omitempty"`
	FileSize          int64   `json:"file_size,omitempty"`
	FileSizeFormatted string  `json:"file_size_formatted,omitempty"`
	Source            string  `json:"source,omitempty"`
	ProcessingTime    float64 `json:"processing_time"`
	AccessCount       int     `json:"access_count,omitempty"`
	Query             string  `json:"query,omitempty"`
}

// ErrorResponse is the wire payload returned on non-2xx statuses.
// The error field may be absent.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExtractionResult is the flattened, immutable result handed to the renderer.
// Optional fields are empty strings (nil for Confidence) when the server
// omitted them.
type ExtractionResult struct {
	Cached            bool
	MatchType         string
	Confidence        *float64
	Title             string
	FileType          string
	Duration          string
	ProcessingTime    float64
	FileSizeFormatted string
	Source            string
	FileID            string
}

// FromExtractResponse flattens a wire payload into an ExtractionResult.
func FromExtractResponse(resp *ExtractResponse) *ExtractionResult {
	return &ExtractionResult{
		Cached:            resp.Cached,
		MatchType:         resp.MatchType,
		Confidence:        resp.Confidence,
		Title:             resp.Data.Title,
		FileType:          resp.Data.FileType,
		Duration:          resp.Data.Duration,
		ProcessingTime:    resp.Data.ProcessingTime,
		FileSizeFormatted: resp.Data.FileSizeFormatted,
		Source:            resp.Data.Source,
		FileID:            resp.Data.FileID,
	}
}

// SearchMatch is one entry of the cache search endpoint response.
type SearchMatch struct {
	Title       string `json:"title"`
	FileType    string `json:"file_type"`
	Duration    string `json:"duration,omitempty"`
	AccessCount int    `json:"access_count"`
}

// SearchResponse is the wire payload of GET /api/v1/search.
type SearchResponse struct {
	Results []SearchMatch `json:"results"`
	Count   int           `json:"count"`
}

// HealthStatus is the wire payload of GET /api/v1/health.
type HealthStatus struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	Version         string `json:"version"`
	Database        string `json:"database"`
	TelegramStorage string `json:"telegram_storage"`
}

// HistoryEntry is one row of the local extraction history database.
type HistoryEntry struct {
	ID         int64
	Timestamp  time.Time
	Query      string
	Format     string
	Title      string
	FileID     string
	Cached     bool
	DurationMs int64
}
