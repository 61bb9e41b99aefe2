package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-jobboard/pkg/greenhouse"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Greenhouse.BaseURL != greenhouse.DefaultBaseURL {
		t.Fatalf("base url = %q", cfg.Greenhouse.BaseURL)
	}
	if cfg.Company.Name != "Careers" {
		t.Fatalf("company name = %q", cfg.Company.Name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
server:
  addr: ":9090"
company:
  slug: acme
  name: Acme
  description: We build things.
  theme: acme/dark
greenhouse:
  base_url: https://harvest.example.com/v1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Company.Slug != "acme" || cfg.Company.Theme != "acme/dark" {
		t.Fatalf("company = %+v", cfg.Company)
	}
	if cfg.Greenhouse.BaseURL != "https://harvest.example.com/v1" {
		t.Fatalf("base url = %q", cfg.Greenhouse.BaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "key-123")
	t.Setenv(EnvUserID, "456")
	t.Setenv(EnvBaseURL, "https://env.example.com/v1")
	t.Setenv(EnvAddr, ":7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Greenhouse.APIKey != "key-123" || cfg.Greenhouse.UserID != "456" {
		t.Fatalf("credentials = %+v", cfg.Greenhouse)
	}
	if cfg.Greenhouse.BaseURL != "https://env.example.com/v1" {
		t.Fatalf("base url = %q", cfg.Greenhouse.BaseURL)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), EnvAPIKey) || !strings.Contains(err.Error(), EnvUserID) {
		t.Fatalf("error should name both credentials: %v", err)
	}

	cfg.Greenhouse.APIKey = "key"
	cfg.Greenhouse.UserID = "1"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
