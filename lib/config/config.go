// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads driver configuration for Strand clients.
//
// Configuration is loaded from a single YAML file specified by:
//   - the STRAND_CONFIG environment variable, or
//   - a --config flag passed to the command.
//
// There are no fallbacks or automatic discovery. This keeps
// configuration deterministic and auditable with no hidden overrides.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when the environment
// matches. The values here are consumed by the transport layer that
// executes queries; this package only describes them — it performs no
// network I/O and never reads the secret itself.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML parses the duration from its string form.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var literal string
	if err := node.Decode(&literal); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(literal)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", literal, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the driver configuration consumed by the transport layer.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Endpoint is the base URL of the Strand database
	// (e.g., "https://db.strand.example").
	Endpoint string `yaml:"endpoint"`

	// SecretFile is the path to the file holding the access key
	// secret. The transport layer reads it; keeping only the path
	// here keeps secrets out of config files and process listings.
	SecretFile string `yaml:"secret_file"`

	// QueryTimeout bounds a single query execution. Zero means the
	// transport's default.
	QueryTimeout Duration `yaml:"query_timeout"`

	// Per-environment overrides, applied after the base values when
	// Environment matches.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains the fields that can be overridden per
// environment.
type Overrides struct {
	Endpoint     *string   `yaml:"endpoint,omitempty"`
	SecretFile   *string   `yaml:"secret_file,omitempty"`
	QueryTimeout *Duration `yaml:"query_timeout,omitempty"`
}

// Load reads and validates the configuration file at path, applying
// the override section matching the configured environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyOverrides()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by the STRAND_CONFIG environment
// variable.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("STRAND_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("STRAND_CONFIG is not set and no --config flag was given")
	}
	return Load(path)
}

func (c *Config) applyOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}
	if overrides.Endpoint != nil {
		c.Endpoint = *overrides.Endpoint
	}
	if overrides.SecretFile != nil {
		c.SecretFile = *overrides.SecretFile
	}
	if overrides.QueryTimeout != nil {
		c.QueryTimeout = *overrides.QueryTimeout
	}
}

func (c *Config) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	parsed, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", c.Endpoint)
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("query_timeout must not be negative")
	}
	return nil
}
