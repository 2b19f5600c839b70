package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const initialConfig = `api_endpoint: https://planner.example.com/api
poll_interval: 3s
timeout: 90s
theme: dark
language: ja
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	return configPath
}

// TestConfigSave tests saving theme changes to config
func TestConfigSave(t *testing.T) {
	configPath := writeConfig(t, initialConfig)

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Theme != "dark" {
		t.Errorf("Expected theme 'dark', got '%s'", cfg.Theme)
	}

	cfg.Theme = "gruvbox"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	reloadedCfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	if reloadedCfg.Theme != "gruvbox" {
		t.Errorf("Expected saved theme 'gruvbox', got '%s'", reloadedCfg.Theme)
	}

	// Verify other fields are preserved
	if reloadedCfg.APIEndpoint != "https://planner.example.com/api" {
		t.Errorf("Expected endpoint to be preserved, got '%s'", reloadedCfg.APIEndpoint)
	}
	if reloadedCfg.PollInterval != 3*time.Second {
		t.Errorf("Expected poll_interval 3s, got %v", reloadedCfg.PollInterval)
	}
	if reloadedCfg.Timeout != 90*time.Second {
		t.Errorf("Expected timeout 90s, got %v", reloadedCfg.Timeout)
	}
	if reloadedCfg.Language != "ja" {
		t.Errorf("Expected language 'ja', got '%s'", reloadedCfg.Language)
	}
}

// TestConfigUpdateTheme tests the UpdateTheme convenience method
func TestConfigUpdateTheme(t *testing.T) {
	configPath := writeConfig(t, initialConfig)

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.UpdateTheme("nord"); err != nil {
		t.Fatalf("Failed to update theme: %v", err)
	}

	reloadedCfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	if reloadedCfg.Theme != "nord" {
		t.Errorf("Expected updated theme 'nord', got '%s'", reloadedCfg.Theme)
	}
}

// TestConfigSave_CreatesMissingFile tests saving a config that was built from defaults
func TestConfigSave_CreatesMissingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if err := cfg.UpdateTheme("dracula"); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("Expected config file to be created: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("Expected path %s, got %s", configPath, cfg.Path())
	}
}

// TestConfigSaveValidation tests that validation happens before save
func TestConfigSaveValidation(t *testing.T) {
	configPath := writeConfig(t, initialConfig)

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	cfg.PollInterval = -1
	if err := cfg.Save(); err == nil {
		t.Error("Expected save to fail with invalid poll_interval")
	}

	cfg.PollInterval = time.Second
	cfg.Theme = ""
	if err := cfg.Save(); err == nil {
		t.Error("Expected save to fail with empty theme")
	}
}

// TestConfigUpdateThemeValidation tests UpdateTheme with empty theme name
func TestConfigUpdateThemeValidation(t *testing.T) {
	configPath := writeConfig(t, initialConfig)

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.UpdateTheme(""); err == nil {
		t.Error("Expected UpdateTheme to fail with empty theme name")
	}

	if cfg.Theme != "dark" {
		t.Errorf("Expected theme to remain 'dark', got '%s'", cfg.Theme)
	}
}
