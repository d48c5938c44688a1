package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "rlcluster.yaml"

// Environment variables holding secrets.
const (
	EnvHCloudToken = "HCLOUD_TOKEN"
	EnvS3AccessKey = "RLCLUSTER_S3_ACCESS_KEY"
	EnvS3SecretKey = "RLCLUSTER_S3_SECRET_KEY"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load loads, defaults and validates a configuration from a file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithoutValidation loads and defaults a configuration from a file. An
// empty path yields the defaults. Callers overlay flags before validating.
func LoadWithoutValidation(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseConfig(data)
}

// LoadFromBytes parses, defaults and validates a configuration.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// FindConfigFile returns DefaultConfigFilename in the working directory if it
// exists, or an empty path.
func FindConfigFile() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	path := filepath.Join(cwd, DefaultConfigFilename)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv copies secrets from the environment into the configuration.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvHCloudToken); v != "" {
		c.Platform.HCloud.Token = v
	}
	if v := os.Getenv(EnvS3AccessKey); v != "" {
		c.Platform.HCloud.ObjectStorage.AccessKey = v
	}
	if v := os.Getenv(EnvS3SecretKey); v != "" {
		c.Platform.HCloud.ObjectStorage.SecretKey = v
	}
}

// Save writes the configuration as YAML. Secrets are never written.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
