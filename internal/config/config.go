package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Contacts ContactsConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ContactsConfig holds duplicate-detection settings.
type ContactsConfig struct {
	DuplicateThreshold float64
	PhotoCachePath     string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string
	DefaultSort    string
}

// Load reads configuration from file and env. Env var overrides use prefix PRICEBOOK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "pricebook", "pricebook.db"))
	v.SetDefault("contacts.duplicate_threshold", 0.5)
	v.SetDefault("contacts.photo_cache_path", filepath.Join(os.Getenv("HOME"), ".local", "share", "pricebook", "photos.json"))
	v.SetDefault("ui.currency_symbol", "₹")
	v.SetDefault("ui.default_sort", "none")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PRICEBOOK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pricebook"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PRICEBOOK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("PRICEBOOK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "pricebook", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("contacts.duplicate_threshold", cfg.Contacts.DuplicateThreshold)
	v.Set("contacts.photo_cache_path", cfg.Contacts.PhotoCachePath)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.default_sort", cfg.UI.DefaultSort)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
