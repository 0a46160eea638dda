// Package cli implements the one-shot (non-TUI) execution paths behind the
// run, search, health, and history subcommands. Ctrl+C cancels the request
// in flight via signal context.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/studiowebux/extractcli/internal/client"
	"github.com/studiowebux/extractcli/internal/history"
	"github.com/studiowebux/extractcli/internal/render"
	"github.com/studiowebux/extractcli/internal/types"
	"github.com/studiowebux/extractcli/internal/validate"
)

// RunOptions configures a one-shot extraction.
type RunOptions struct {
	Server       string
	APIKey       string
	Query        string
	Format       string
	Force        bool
	OutputFormat string // "text" (default) or "json"
	HistoryPath  string // empty disables history recording
	Out          io.Writer
}

// Run executes one extraction and prints the result.
func Run(opts RunOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if !validate.APIKey(opts.APIKey) {
		return fmt.Errorf("API key must be at least %d characters", validate.MinAPIKeyLength)
	}
	if !validate.Query(opts.Query) {
		return fmt.Errorf("query must be at least %d characters", validate.MinQueryLength)
	}
	if !validate.Format(opts.Format) {
		return errors.New("format must be audio or video")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(opts.Server)
	started := time.Now()
	result, err := c.Extract(ctx, opts.APIKey, opts.Query, opts.Format, opts.Force)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Request cancelled by user")
			return ctx.Err()
		}
		fmt.Fprintln(opts.Out, render.Failure(err.Error()))
		return err
	}

	if opts.HistoryPath != "" {
		saveHistory(opts, result, time.Since(started))
	}

	if opts.OutputFormat == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize result: %w", err)
		}
		fmt.Fprintln(opts.Out, string(data))
		return nil
	}

	printResultView(opts.Out, render.Success(result))
	return nil
}

func printResultView(out io.Writer, view render.ResultView) {
	fmt.Fprintln(out, view.Glyph)
	if view.MatchType != "" {
		fmt.Fprintf(out, "Match: %s\n", view.MatchType)
	}
	for _, field := range view.Fields {
		fmt.Fprintf(out, "%-12s %s\n", field.Label+":", field.Value)
	}
}

func saveHistory(opts RunOptions, result *types.ExtractionResult, elapsed time.Duration) {
	manager, err := history.NewManager(opts.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open history: %v\n", err)
		return
	}
	defer manager.Close()

	entry := types.HistoryEntry{
		Query:      opts.Query,
		Format:     opts.Format,
		Title:      result.Title,
		FileID:     result.FileID,
		Cached:     result.Cached,
		DurationMs: elapsed.Milliseconds(),
	}
	if err := manager.Save(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
	}
}

// SearchOptions configures a one-shot cache search.
type SearchOptions struct {
	Server string
	APIKey string
	Query  string
	Limit  int
	Out    io.Writer
}

// RunSearch queries the server cache without triggering an extraction.
func RunSearch(opts SearchOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if !validate.APIKey(opts.APIKey) {
		return fmt.Errorf("API key must be at least %d characters", validate.MinAPIKeyLength)
	}
	if !validate.Query(opts.Query) {
		return fmt.Errorf("query must be at least %d characters", validate.MinQueryLength)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(opts.Server)
	resp, err := c.Search(ctx, opts.APIKey, opts.Query, opts.Limit)
	if err != nil {
		fmt.Fprintln(opts.Out, render.Failure(err.Error()))
		return err
	}

	if resp.Count == 0 {
		fmt.Fprintln(opts.Out, "No cached matches")
		return nil
	}

	fmt.Fprintf(opts.Out, "%d cached match(es):\n", resp.Count)
	for _, match := range resp.Results {
		duration := match.Duration
		if duration == "" {
			duration = "Unknown"
		}
		fmt.Fprintf(opts.Out, "  %s [%s, %s] accessed %d time(s)\n",
			match.Title, match.FileType, duration, match.AccessCount)
	}
	return nil
}

// RunHealth probes the server health endpoint.
func RunHealth(server string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(server)
	status, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintln(out, render.Failure(err.Error()))
		return err
	}

	fmt.Fprintf(out, "Status:    %s\n", status.Status)
	fmt.Fprintf(out, "Version:   %s\n", status.Version)
	fmt.Fprintf(out, "Database:  %s\n", status.Database)
	fmt.Fprintf(out, "Storage:   %s\n", status.TelegramStorage)
	return nil
}

// RunHistory prints the most recent local extractions.
func RunHistory(dbPath string, limit int, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	manager, err := history.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer manager.Close()

	entries, err := manager.Load(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No extraction history")
		return nil
	}

	for _, entry := range entries {
		origin := "fetched"
		if entry.Cached {
			origin = "cached"
		}
		fmt.Fprintf(out, "%s  %-7s %-6s %s (%s)\n",
			entry.Timestamp.Format("2006-01-02 15:04"),
			origin, entry.Format, entry.Title, entry.Query)
	}
	return nil
}
