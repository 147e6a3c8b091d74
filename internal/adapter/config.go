package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig identifies the Appwrite project and its resources.
// It is passed by value and never modified after the client is built.
type BackendConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	Platform          string        `mapstructure:"platform"`      // Registered platform identifier
	OriginScheme      string        `mapstructure:"origin_scheme"` // e.g. "appwrite-android"
	ProjectID         string        `mapstructure:"project_id"`
	DatabaseID        string        `mapstructure:"database_id"`
	UserCollectionID  string        `mapstructure:"user_collection_id"`
	VideoCollectionID string        `mapstructure:"video_collection_id"`
	StorageID         string        `mapstructure:"storage_id"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// StoreConfig holds local persistence configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty keeps the session in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"`
	Suggestions int    `mapstructure:"suggestions"` // Recent queries offered by the search input
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Endpoint:          "https://cloud.appwrite.io/v1",
			Platform:          "com.sudatra.aora",
			OriginScheme:      "appwrite-android",
			ProjectID:         "666065c60014a4296bf5",
			DatabaseID:        "6660673f000d82a06fc6",
			UserCollectionID:  "6660677800373a511812",
			VideoCollectionID: "666067a400380a90efd3",
			StorageID:         "66606bd6001b4a389f52",
			Timeout:           30 * time.Second,
		},
		Store: StoreConfig{
			Path: defaultDataPath(),
		},
		UI: UIConfig{
			Theme:       "default",
			Suggestions: 5,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "aora.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aora")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "aora")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aora")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aora")
	}
}

// newViper returns a viper instance seeded with the defaults so that
// environment overrides apply to every key
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("backend.endpoint", cfg.Backend.Endpoint)
	v.SetDefault("backend.platform", cfg.Backend.Platform)
	v.SetDefault("backend.origin_scheme", cfg.Backend.OriginScheme)
	v.SetDefault("backend.project_id", cfg.Backend.ProjectID)
	v.SetDefault("backend.database_id", cfg.Backend.DatabaseID)
	v.SetDefault("backend.user_collection_id", cfg.Backend.UserCollectionID)
	v.SetDefault("backend.video_collection_id", cfg.Backend.VideoCollectionID)
	v.SetDefault("backend.storage_id", cfg.Backend.StorageID)
	v.SetDefault("backend.timeout", cfg.Backend.Timeout)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.suggestions", cfg.UI.Suggestions)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides, e.g. AORA_BACKEND_PROJECT_ID
	v.SetEnvPrefix("AORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment. An empty path
// searches config.yaml in the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if path == "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, or to the default config file when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to keep snake_case key names
	v.Set("backend.endpoint", cfg.Backend.Endpoint)
	v.Set("backend.platform", cfg.Backend.Platform)
	v.Set("backend.origin_scheme", cfg.Backend.OriginScheme)
	v.Set("backend.project_id", cfg.Backend.ProjectID)
	v.Set("backend.database_id", cfg.Backend.DatabaseID)
	v.Set("backend.user_collection_id", cfg.Backend.UserCollectionID)
	v.Set("backend.video_collection_id", cfg.Backend.VideoCollectionID)
	v.Set("backend.storage_id", cfg.Backend.StorageID)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())

	v.Set("store.path", cfg.Store.Path)

	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.suggestions", cfg.UI.Suggestions)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate returns an error naming the first missing backend identifier
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"backend.endpoint", c.Backend.Endpoint},
		{"backend.project_id", c.Backend.ProjectID},
		{"backend.database_id", c.Backend.DatabaseID},
		{"backend.user_collection_id", c.Backend.UserCollectionID},
		{"backend.video_collection_id", c.Backend.VideoCollectionID},
		{"backend.storage_id", c.Backend.StorageID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("config: %s is required", r.key)
		}
	}
	return nil
}
