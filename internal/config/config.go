// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or environment
// variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	Verbose bool `json:"verbose,omitempty"`  // Print detailed debug information
	LogJSON bool `json:"log_json,omitempty"` // Emit JSON-encoded logs

	// Engine defaults applied when a request carries no scoring config.
	Scoring *types.ScoringConfig `json:"scoring,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from environment variables: DATABASE_URL, PORT,
// LOG_JSON. Values already set on the receiver win over the environment.
func (c *Config) FromEnv() error {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return fmt.Errorf("config error: PORT must be an integer, got %q", portStr)
			}
			c.Port = port
		}
	}
	if !c.LogJSON && os.Getenv("LOG_JSON") == "true" {
		c.LogJSON = true
	}
	return nil
}

// ScoringConfig returns the configured engine defaults, falling back to the
// engine's own defaults when the file set none.
func (c *Config) ScoringConfig() types.ScoringConfig {
	if c.Scoring != nil {
		return *c.Scoring
	}
	return types.DefaultScoringConfig()
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Scoring != nil {
		if err := c.Scoring.Validate(); err != nil {
			return fmt.Errorf("config error: invalid scoring defaults: %w", err)
		}
	}
	return nil
}
