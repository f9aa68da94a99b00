// Package config handles loading and managing vouch configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vouchdev/vouch/pkg/scoring"
)

// FileName is the per-project configuration file, looked up at the project
// root or any parent directory.
const FileName = ".vouch.yaml"

// Config is the top-level configuration for vouch.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Scoring ScoringConfig `yaml:"scoring"`
	Badge   BadgeConfig   `yaml:"badge"`
}

// ScanConfig controls which analyzers run and what they look at.
type ScanConfig struct {
	IgnorePaths     []string `yaml:"ignore_paths"`
	CheckBloat      bool     `yaml:"check_bloat"`
	CheckSecurity   bool     `yaml:"check_security"`
	CheckDuplicates bool     `yaml:"check_duplicates"`
	CheckOnline     bool     `yaml:"check_online"` // consult the remote signature registry
	RegistryURL     string   `yaml:"registry_url"`
}

// ScoringConfig controls aggregation behavior.
type ScoringConfig struct {
	CertifyThreshold int             `yaml:"certify_threshold"`
	Weights          scoring.Weights `yaml:"weights"`
}

// BadgeConfig controls badge rendering.
type BadgeConfig struct {
	Style string `yaml:"style"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			CheckBloat:      true,
			CheckSecurity:   true,
			CheckDuplicates: true,
			RegistryURL:     "https://registry.vouch.dev",
		},
		Scoring: ScoringConfig{
			CertifyThreshold: scoring.CertifyThreshold,
			Weights:          scoring.DefaultWeights(),
		},
		Badge: BadgeConfig{
			Style: scoring.DefaultBadgeStyle,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the given path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FindConfigFile looks for .vouch.yaml in the given directory and its
// parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
