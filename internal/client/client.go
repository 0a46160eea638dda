// Package client implements the HTTP client for the media-extraction API.
// Every call takes a context; cancelling it aborts the request in flight.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/studiowebux/extractcli/internal/types"
)

// UnknownErrorMessage is displayed when a non-2xx response carries no
// structured error field.
const UnknownErrorMessage = "Unknown error"

// APIError is a structured error reported by the server on a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to one extraction API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL. No timeout is set on the
// underlying http.Client: an extraction can run for minutes and the caller
// cancels via context instead.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Extract performs GET /api/v1/extract and returns the flattened result.
// Non-2xx statuses yield an *APIError carrying the server's message (or
// UnknownErrorMessage when absent). Transport and parse failures come back
// as plain errors.
func (c *Client) Extract(ctx context.Context, apiKey, query, format string, force bool) (*types.ExtractionResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", format)
	params.Set("api_key", apiKey)
	if force {
		params.Set("force_download", "true")
	}

	body, err := c.get(ctx, "/api/v1/extract", params)
	if err != nil {
		return nil, err
	}

	var resp types.ExtractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return types.FromExtractResponse(&resp), nil
}

// Search performs GET /api/v1/search against the server cache.
func (c *Client) Search(ctx context.Context, apiKey, query string, limit int) (*types.SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", apiKey)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/search", params)
	if err != nil {
		return nil, err
	}

	var resp types.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &resp, nil
}

// Health performs GET /api/v1/health. No API key is required.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	body, err := c.get(ctx, "/api/v1/health", nil)
	if err != nil {
		return nil, err
	}

	var status types.HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &status, nil
}

// get issues a GET request and returns the raw body of a 2xx response.
// Non-2xx responses are converted to *APIError.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverErrorMessage(body),
		}
	}

	return body, nil
}

// serverErrorMessage extracts the structured error message from a non-2xx
// body, falling back to UnknownErrorMessage when absent or unparsable.
func serverErrorMessage(body []byte) string {
	var errResp types.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return UnknownErrorMessage
	}
	return errResp.Error
}
