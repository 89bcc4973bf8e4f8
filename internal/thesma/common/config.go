// Package common provides shared utilities for the Thesma MCP server.
package common

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultBaseURL is the production Thesma API endpoint.
const DefaultBaseURL = "https://api.thesma.dev"

// Config holds all thesma-mcp configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Port      string `toml:"port"`
	Transport string `toml:"transport"` // "stdio" (default) or "http"
}

// APIConfig holds Thesma API connection settings.
type APIConfig struct {
	Key     string `toml:"key"`
	BaseURL string `toml:"base_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Name:      "Thesma-MCP",
			Port:      "8200",
			Transport: "stdio",
		},
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/thesma-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from a TOML file with defaults and env
// overrides. A missing file is not an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// File not found — use defaults
		} else {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides applies THESMA_* environment variables over file values.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("THESMA_API_KEY"); key != "" {
		cfg.API.Key = key
	}
	if url := os.Getenv("THESMA_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if port := os.Getenv("THESMA_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if transport := os.Getenv("THESMA_MCP_TRANSPORT"); transport != "" {
		cfg.Server.Transport = transport
	}
	if level := os.Getenv("THESMA_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return fmt.Errorf("THESMA_API_KEY not set. Get an API key at https://portal.thesma.dev")
	}
	return nil
}
