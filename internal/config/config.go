package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config file names, in lookup order
const (
	JSONFileName = ".quadrant.json"
	YAMLFileName = ".quadrant.yaml"
)

// Environment overrides
const (
	EnvStorageDriver = "QUADRANT_STORAGE_DRIVER"
	EnvStoragePath   = "QUADRANT_STORAGE_PATH"
	EnvDatabaseURL   = "QUADRANT_DATABASE_URL"
)

// Config represents the full Quadrant configuration
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Driver      string `json:"driver" yaml:"driver"`
	Path        string `json:"path" yaml:"path"`
	DatabaseURL string `json:"databaseUrl" yaml:"databaseUrl"`
	TimeoutMs   int    `json:"timeoutMs" yaml:"timeoutMs"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	SearchDebounceMs int  `json:"searchDebounceMs" yaml:"searchDebounceMs"`
	SuggestionLimit  int  `json:"suggestionLimit" yaml:"suggestionLimit"`
	ToastDurationMs  int  `json:"toastDurationMs" yaml:"toastDurationMs"`
	HideDescriptions bool `json:"hideDescriptions" yaml:"hideDescriptions"`
}

// LoggingConfig contains log file settings
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".quadrant")

	return &Config{
		Storage: StorageConfig{
			Driver:    DriverFile,
			Path:      filepath.Join(dataDir, "store.json"),
			TimeoutMs: 5000,
		},
		UI: UIConfig{
			SearchDebounceMs: 300,
			SuggestionLimit:  5,
			ToastDurationMs:  3000,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "logs", "quadrant.log"),
		},
	}
}

// Timeout returns the per-operation storage deadline
func (s StorageConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// SearchDebounce returns the delay before a typed query is applied
func (u UIConfig) SearchDebounce() time.Duration {
	return time.Duration(u.SearchDebounceMs) * time.Millisecond
}

// ToastDuration returns how long notifications stay visible
func (u UIConfig) ToastDuration() time.Duration {
	return time.Duration(u.ToastDurationMs) * time.Millisecond
}

// SlogLevel maps the configured level name to a slog level
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks settings that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverMemory:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("storage.databaseUrl is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// LoadConfig loads configuration from dir with priority:
// 1. Environment overrides
// 2. .quadrant.json in dir (with version migration support)
// 3. .quadrant.yaml in dir
// 4. Defaults
func LoadConfig(dir string) (*Config, error) {
	cfg, err := loadFile(dir)
	if err != nil {
		return nil, err
	}

	cfg = MergeWithDefaults(cfg)
	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return readFile(path)
		}
	}
	return &Config{}, nil
}

// FilePath returns the config file in dir that LoadConfig reads, or the JSON
// path when neither exists yet
func FilePath(dir string) string {
	jsonPath := filepath.Join(dir, JSONFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath
	}
	yamlPath := filepath.Join(dir, YAMLFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	return jsonPath
}

// ApplyEnv overrides storage settings from the environment
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvStorageDriver); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.Storage.DatabaseURL = v
		if os.Getenv(EnvStorageDriver) == "" {
			cfg.Storage.Driver = DriverPostgres
		}
	}
}

// SaveConfig saves configuration to the specified path. A .yaml or .yml
// extension writes YAML, anything else writes versioned JSON.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = MarshalVersionedConfig(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveUI writes ui into the config file at path and leaves every other
// section as the file has it. Environment overrides are never written.
func SaveUI(path string, ui UIConfig) error {
	cfg, err := readFile(path)
	if err != nil {
		return err
	}
	cfg.UI = ui
	return SaveConfig(cfg, path)
}

// readFile parses the config file at path without defaults or environment.
// A missing file yields the defaults.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return &cfg, nil
	default:
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return cfg, nil
	}
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge Storage config
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = defaults.Storage.Driver
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaults.Storage.Path
	}
	if cfg.Storage.TimeoutMs == 0 {
		cfg.Storage.TimeoutMs = defaults.Storage.TimeoutMs
	}

	// Merge UI config
	if cfg.UI.SearchDebounceMs == 0 {
		cfg.UI.SearchDebounceMs = defaults.UI.SearchDebounceMs
	}
	if cfg.UI.SuggestionLimit == 0 {
		cfg.UI.SuggestionLimit = defaults.UI.SuggestionLimit
	}
	if cfg.UI.ToastDurationMs == 0 {
		cfg.UI.ToastDurationMs = defaults.UI.ToastDurationMs
	}

	// Merge Logging config
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaults.Logging.File
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
