// Package config loads the job board configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jobboard/pkg/board"
	"github.com/goliatone/go-jobboard/pkg/greenhouse"
)

// Environment variable names recognised by Load. The credentials are never
// read from the YAML file.
const (
	EnvAPIKey  = "GREENHOUSE_API_KEY"
	EnvUserID  = "GREENHOUSE_USER_ID"
	EnvBaseURL = "GREENHOUSE_BASE_URL"
	EnvAddr    = "JOBBOARD_ADDR"
)

// Greenhouse holds the upstream API connection settings.
type Greenhouse struct {
	APIKey  string `yaml:"-"`
	UserID  string `yaml:"-"`
	BaseURL string `yaml:"base_url"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Addr string `yaml:"addr"`
}

// Config is the full job board configuration.
type Config struct {
	Server     Server        `yaml:"server"`
	Greenhouse Greenhouse    `yaml:"greenhouse"`
	Company    board.Company `yaml:"company"`
}

// Default returns the configuration before any file or environment input.
func Default() Config {
	return Config{
		Server:     Server{Addr: ":8080"},
		Greenhouse: Greenhouse{BaseURL: greenhouse.DefaultBaseURL},
		Company:    board.Company{Slug: "default", Name: "Careers"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// one is given, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Greenhouse.BaseURL == "" {
		cfg.Greenhouse.BaseURL = greenhouse.DefaultBaseURL
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Greenhouse.APIKey = v
	}
	if v := os.Getenv(EnvUserID); v != "" {
		c.Greenhouse.UserID = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Greenhouse.BaseURL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks that the configuration can submit applications: both the
// API key and the On-Behalf-Of user are required.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Greenhouse.APIKey) == "" {
		missing = append(missing, EnvAPIKey)
	}
	if strings.TrimSpace(c.Greenhouse.UserID) == "" {
		missing = append(missing, EnvUserID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
