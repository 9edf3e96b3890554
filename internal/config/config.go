// Package config loads the agent configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	DefaultLocation   = "us-central1"
	DefaultConnection = "redshift-demo-connection"
	DefaultModel      = "claude-sonnet-4-5"
)

// Config is the flat agent configuration, loaded once at startup and immutable
// for the process lifetime.
type Config struct {
	ProjectID  string `json:"project_id"`
	Location   string `json:"location"`
	Connection string `json:"connection"`
	Model      string `json:"model"`
}

// Load reads the JSON configuration file at path. A missing or malformed file
// is an error; optional keys fall back to defaults, and GCP_PROJECT_ID from
// the environment fills in the project when the file omits it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ProjectID == "" {
		c.ProjectID = os.Getenv("GCP_PROJECT_ID")
	}
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.Connection == "" {
		c.Connection = DefaultConnection
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
}

// Validate checks the fields required to reach the connector.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}
	if c.Connection == "" {
		return fmt.Errorf("connection is required")
	}
	return nil
}
