// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// DefaultDataURL is the CFIA open-data source for recall notices.
const DefaultDataURL = "https://recalls-rappels.canada.ca/sites/default/files/opendata-donneesouvertes/HCRSAMOpenData.csv"

// DefaultDataDir is where batch files are downloaded and written.
const DefaultDataDir = "recalls"

var validate = validator.New()

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults, environment
// variables, or must be provided via CLI flags.
type Config struct {
	DataURL     string `json:"data_url,omitempty" validate:"omitempty,url"` // Remote CSV to ingest
	DataDir     string `json:"data_dir,omitempty"`                          // Local directory for batch files
	DatabaseURL string `json:"database_url,omitempty"`                      // PostgreSQL connection URL
	FilePrefix  string `json:"file_prefix,omitempty"`                       // Dated batch filename prefix
	ChunkSize   int    `json:"chunk_size,omitempty" validate:"gte=0"`       // Download copy-buffer size in bytes
	MaxRetries  int    `json:"max_retries,omitempty" validate:"gte=0,lte=10"`
	Verbose     bool   `json:"verbose,omitempty"` // Print detailed debug information
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

// Validate checks that the configuration has valid values. Required fields
// are not checked here; those are enforced per-command after merging flags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// ApplyDefaults fills empty fields from environment variables and built-in
// defaults. CLI flag overrides must be applied before calling this.
func (c *Config) ApplyDefaults() {
	if c.DataURL == "" {
		c.DataURL = os.Getenv("CFIA_DATA_URL")
	}
	if c.DataURL == "" {
		c.DataURL = DefaultDataURL
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.ChunkSize == 0 {
		if v, err := strconv.Atoi(os.Getenv("CFIA_CHUNK_SIZE")); err == nil && v > 0 {
			c.ChunkSize = v
		}
	}
}
