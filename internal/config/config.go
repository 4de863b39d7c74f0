package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.photocards)
	ConfigDir string

	// ConfigFile is the YAML settings file
	ConfigFile string

	// DatabasePath is the SQLite database file for the activity log
	DatabasePath string

	// LogFile is the diagnostic log file (the TUI owns the terminal,
	// so nothing may be written to stdout/stderr while it runs)
	LogFile string
)

// Settings holds the user-editable configuration.
type Settings struct {
	// ServerURL is the base URL of the gallery service, without a
	// trailing slash, e.g. https://gallery.example.com/v1/group-12
	ServerURL string `yaml:"server_url"`

	// Token is the authorization token sent on every request
	Token string `yaml:"token"`

	// HistoryEnabled toggles the local activity log
	HistoryEnabled *bool `yaml:"history_enabled,omitempty"`
}

// Initialize sets up the configuration directory and default settings file.
// It creates ~/.photocards/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".photocards")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "photocards.db")
	LogFile = filepath.Join(ConfigDir, "photocards.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create a default settings file if it doesn't exist
	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		defaults := Settings{ServerURL: "", Token: ""}
		if err := Save(&defaults); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return nil
}

// Load reads the settings file. A missing file yields empty settings.
func Load() (*Settings, error) {
	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &s, nil
}

// Save writes the settings file.
func Save(s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigFile, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HistoryOn reports whether the activity log is enabled (default true).
func (s *Settings) HistoryOn() bool {
	return s.HistoryEnabled == nil || *s.HistoryEnabled
}
