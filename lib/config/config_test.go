// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strand.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
environment: development
endpoint: https://db.strand.example
secret_file: /run/secrets/strand
query_timeout: 30s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Environment != Development {
		t.Errorf("Environment = %q, want %q", cfg.Environment, Development)
	}
	if cfg.Endpoint != "https://db.strand.example" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.SecretFile != "/run/secrets/strand" {
		t.Errorf("SecretFile = %q", cfg.SecretFile)
	}
	if time.Duration(cfg.QueryTimeout) != 30*time.Second {
		t.Errorf("QueryTimeout = %v, want 30s", time.Duration(cfg.QueryTimeout))
	}
}

func TestLoadAppliesMatchingOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
environment: staging
endpoint: https://db.strand.example
query_timeout: 30s
staging:
  endpoint: https://staging.strand.example
  query_timeout: 2m
production:
  endpoint: https://prod.strand.example
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Endpoint != "https://staging.strand.example" {
		t.Errorf("Endpoint = %q, want the staging override", cfg.Endpoint)
	}
	if time.Duration(cfg.QueryTimeout) != 2*time.Minute {
		t.Errorf("QueryTimeout = %v, want 2m", time.Duration(cfg.QueryTimeout))
	}
}

func TestLoadIgnoresNonMatchingOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
environment: development
endpoint: https://db.strand.example
production:
  endpoint: https://prod.strand.example
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Endpoint != "https://db.strand.example" {
		t.Errorf("Endpoint = %q, want the base value", cfg.Endpoint)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{"missing endpoint", `environment: development`, "endpoint is required"},
		{
			"non-http endpoint",
			`endpoint: ftp://db.strand.example`,
			"must use http or https",
		},
		{
			"malformed duration",
			"endpoint: https://x.example\nquery_timeout: soon",
			"parsing duration",
		},
		{"malformed yaml", `{{`, "parsing config"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, test.contents))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want it to contain %q", err, test.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load of a missing file should fail")
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, `endpoint: https://db.strand.example`)
	t.Setenv("STRAND_CONFIG", path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error: %v", err)
	}
	if cfg.Endpoint != "https://db.strand.example" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
}

func TestLoadFromEnvUnset(t *testing.T) {
	t.Setenv("STRAND_CONFIG", "")

	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv without STRAND_CONFIG should fail")
	}
}
