package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultHotkey triggers the pie menu from anywhere.
	DefaultHotkey = "Ctrl+Space"
	// DefaultHideDelayMs is the fade-out duration used when the render
	// surface requests a hide without naming a delay.
	DefaultHideDelayMs = 300
	// DefaultQueryTimeoutMs bounds the focused-window/pointer queries per
	// invocation. A stuck query must not delay the menu forever.
	DefaultQueryTimeoutMs = 500
)

type Config struct {
	Hotkey            string
	HideDelayMs       int
	QueryTimeoutMs    int
	SwitcherCombo     string
	EnableFileLogging bool
}

// Load reads configuration from a .env file next to the executable (or the
// file named by PIE_MENU_ENV) and from the process environment. Environment
// variables win over .env values because godotenv never overwrites them.
func Load() (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		HideDelayMs:       getEnvInt("HIDE_DELAY_MS", DefaultHideDelayMs),
		QueryTimeoutMs:    getEnvInt("QUERY_TIMEOUT_MS", DefaultQueryTimeoutMs),
		SwitcherCombo:     getEnvWithDefault("SWITCHER_COMBO", defaultSwitcherCombo()),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv("PIE_MENU_ENV"); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}

// defaultSwitcherCombo is the combo injected to hand an app-switch over to
// the OS after the menu hides.
func defaultSwitcherCombo() string {
	if runtime.GOOS == "darwin" {
		return "Cmd+Tab"
	}
	return "Alt+Tab"
}
