package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("HOTKEY", "Ctrl+Shift+P")
	os.Setenv("HIDE_DELAY_MS", "450")
	os.Setenv("ENABLE_FILE_LOGGING", "true")

	defer func() {
		os.Unsetenv("HOTKEY")
		os.Unsetenv("HIDE_DELAY_MS")
		os.Unsetenv("ENABLE_FILE_LOGGING")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Hotkey != "Ctrl+Shift+P" {
		t.Errorf("Expected Hotkey to be 'Ctrl+Shift+P', got '%s'", cfg.Hotkey)
	}
	if cfg.HideDelayMs != 450 {
		t.Errorf("Expected HideDelayMs to be 450, got %d", cfg.HideDelayMs)
	}
	if !cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be true, got %v", cfg.EnableFileLogging)
	}
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("HOTKEY")
	os.Unsetenv("HIDE_DELAY_MS")
	os.Unsetenv("QUERY_TIMEOUT_MS")
	os.Unsetenv("ENABLE_FILE_LOGGING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Hotkey != DefaultHotkey {
		t.Errorf("Expected default hotkey %q, got %q", DefaultHotkey, cfg.Hotkey)
	}
	if cfg.HideDelayMs != DefaultHideDelayMs {
		t.Errorf("Expected default hide delay %d, got %d", DefaultHideDelayMs, cfg.HideDelayMs)
	}
	if cfg.QueryTimeoutMs != DefaultQueryTimeoutMs {
		t.Errorf("Expected default query timeout %d, got %d", DefaultQueryTimeoutMs, cfg.QueryTimeoutMs)
	}
	if cfg.SwitcherCombo == "" {
		t.Errorf("Expected a default switcher combo, got empty string")
	}
}

func TestLoadRejectsNegativeDelay(t *testing.T) {
	os.Setenv("HIDE_DELAY_MS", "-5")
	defer os.Unsetenv("HIDE_DELAY_MS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.HideDelayMs != DefaultHideDelayMs {
		t.Errorf("Negative HIDE_DELAY_MS should fall back to default %d, got %d", DefaultHideDelayMs, cfg.HideDelayMs)
	}
}
