package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studiowebux/extractcli/internal/cli"
	"github.com/studiowebux/extractcli/internal/config"
	"github.com/studiowebux/extractcli/internal/tui"
	"github.com/studiowebux/extractcli/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "extractcli",
	Short: "Interactive console for the media-extraction API",
	Long: `extractcli drives a remote media-extraction API from the terminal.

Run without arguments to start the interactive console: fill in your API key,
a query, and a format, then submit with ctrl+enter. Escape cancels the request
in flight. Form fields persist across sessions.

Examples:
  extractcli                                # Start the interactive console
  extractcli run "never gonna give you up"  # One-shot extraction
  extractcli run "some video" -f video      # Extract as video
  extractcli search "beatles"               # Look up the server cache
  extractcli health                         # Probe the server
  extractcli history                        # Show recent extractions`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initialize()
		if err != nil {
			return err
		}
		format := flagFormat
		if format == "" {
			format = cfg.DefaultFormat
		}
		return tui.Run(resolveServer(cfg), format)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <query>",
	Short: "Execute one extraction in CLI mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initialize()
		if err != nil {
			return err
		}
		format := flagFormat
		if format == "" {
			format = cfg.DefaultFormat
		}
		return cli.Run(cli.RunOptions{
			Server:       resolveServer(cfg),
			APIKey:       resolveAPIKey(),
			Query:        args[0],
			Format:       format,
			Force:        flagForce,
			OutputFormat: flagOutput,
			HistoryPath:  config.DatabasePath,
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the server-side cache without extracting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initialize()
		if err != nil {
			return err
		}
		return cli.RunSearch(cli.SearchOptions{
			Server: resolveServer(cfg),
			APIKey: resolveAPIKey(),
			Query:  args[0],
			Limit:  flagLimit,
		})
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the extraction server health endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initialize()
		if err != nil {
			return err
		}
		return cli.RunHealth(resolveServer(cfg), nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent local extractions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := initialize(); err != nil {
			return err
		}
		return cli.RunHistory(config.DatabasePath, flagLimit, nil)
	},
}

var (
	flagServer string
	flagAPIKey string
	flagFormat string
	flagForce  bool
	flagOutput string
	flagLimit  int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Extraction server base URL")
	rootCmd.PersistentFlags().StringVarP(&flagAPIKey, "api-key", "k", "", "API key (or EXTRACTCLI_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Extraction format (audio/video)")

	runCmd.Flags().BoolVar(&flagForce, "force", false, "Bypass the server cache")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json)")
	searchCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Maximum results")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Maximum entries")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(historyCmd)
}

func initialize() (*config.Client, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveServer(cfg *config.Client) string {
	if flagServer != "" {
		return flagServer
	}
	return cfg.Server
}

// resolveAPIKey applies the flag, then the environment. CLI mode has no
// persisted form, so an empty key simply fails validation downstream.
func resolveAPIKey() string {
	if flagAPIKey != "" {
		return flagAPIKey
	}
	return os.Getenv("EXTRACTCLI_API_KEY")
}
