// Package config loads policygate settings from YAML.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/policygate/internal/constitution"
)

// JurisdictionEnv overrides the configured jurisdiction when set.
const JurisdictionEnv = "LOCAL_JURISDICTION"

// ServerConfig holds gRPC and metrics listener settings.
type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Config holds all policygate settings.
type Config struct {
	Jurisdiction string       `yaml:"jurisdiction"`
	AuditLog     string       `yaml:"audit_log"`
	Remote       string       `yaml:"remote"`
	Server       ServerConfig `yaml:"server"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Jurisdiction: constitution.DefaultJurisdiction,
		Server: ServerConfig{
			Port: 50052,
		},
	}
}

// DefaultPath returns ~/.policygate/config.yaml, or "" if there is no home dir.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".policygate", "config.yaml")
}

// Load reads settings from a YAML file.
// Empty path falls back to DefaultPath. Missing file returns defaults.
// Invalid YAML returns an error. LOCAL_JURISDICTION wins over the file.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash loads settings and returns the SHA-256 of the raw file bytes.
// When no file exists the hash is the SHA-256 of empty input.
func LoadWithHash(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("failed to read config: %w", err)
		}
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if env := strings.TrimSpace(os.Getenv(JurisdictionEnv)); env != "" {
		cfg.Jurisdiction = env
	}
	if strings.TrimSpace(cfg.Jurisdiction) == "" {
		cfg.Jurisdiction = constitution.DefaultJurisdiction
	}

	return cfg, hash, nil
}

// DefaultYAML returns a commented YAML string for init-config.
func DefaultYAML() string {
	return `# policygate configuration
# Generated by: policygate init-config

# Jurisdiction of the physical host running the agents.
# The LOCAL_JURISDICTION environment variable overrides this value.
# It is recorded with every check; matching does not depend on it yet.
jurisdiction: Default

# Hash-chained JSONL audit log of every check (empty disables auditing).
audit_log: ""

# Address of a remote "policygate serve" instance. When set, "policygate check"
# evaluates remotely and fails closed if the server is unreachable.
remote: ""

server:
  # gRPC listen port for "policygate serve".
  port: 50052
  # Prometheus /metrics listen address (empty disables metrics endpoint).
  metrics_addr: ""
`
}
