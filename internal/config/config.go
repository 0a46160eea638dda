package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755

	// DefaultServer is the extraction API base URL used when neither the
	// config file nor the environment provides one.
	DefaultServer = "http://localhost:5000"

	// ServerEnvVar overrides the configured server base URL when set.
	ServerEnvVar = "EXTRACTCLI_SERVER"
)

var (
	// ConfigDir is the global configuration directory (~/.extractcli)
	ConfigDir string

	// FormFile is the persisted form snapshot file
	FormFile string

	// DatabasePath is the SQLite database file for extraction history
	DatabasePath string

	// ConfigFile is the optional client configuration file
	ConfigFile string
)

// Client is the optional on-disk client configuration.
type Client struct {
	Server        string `yaml:"server"`
	DefaultFormat string `yaml:"default_format"`
}

// Initialize sets up the configuration directory and global paths.
// It creates ~/.extractcli/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".extractcli")
	FormFile = filepath.Join(ConfigDir, ".form.json")
	DatabasePath = filepath.Join(ConfigDir, "extractcli.db")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// LoadClient reads the client configuration file, applying defaults and the
// EXTRACTCLI_SERVER environment override. A missing file is not an error.
func LoadClient() (*Client, error) {
	cfg := &Client{
		Server:        DefaultServer,
		DefaultFormat: "audio",
	}

	if ConfigFile != "" {
		data, err := os.ReadFile(ConfigFile)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
		}
	}

	if server := os.Getenv(ServerEnvVar); server != "" {
		cfg.Server = server
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "audio"
	}

	return cfg, nil
}
