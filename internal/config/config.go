// Package config loads and saves the snowball TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all snowball configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds planning preferences.
type GeneralConfig struct {
	CycleDays int    `toml:"cycle_days"`
	DataFile  string `toml:"data_file,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CycleDays: 14,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snowball")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "snowball")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.General.CycleDays <= 0 {
		cfg.General.CycleDays = DefaultConfig().General.CycleDays
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// DataFile returns the database path from the env var or config, in that
// order. Empty means the store default.
func DataFile(cfg Config) string {
	if p := os.Getenv("SNOWBALL_DATA_FILE"); p != "" {
		return p
	}
	return cfg.General.DataFile
}

// LogLevel returns the log level from the env var or config, in that order.
func LogLevel(cfg Config) string {
	if lvl := os.Getenv("SNOWBALL_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return cfg.Log.Level
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
