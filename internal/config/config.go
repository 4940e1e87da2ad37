// Package config provides application configuration management for palettepro.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/wethinkt/go-palettepro/internal/harmony"
	"github.com/wethinkt/go-palettepro/internal/search"
)

// Defaults for "palettepro serve".
const (
	DefaultPort = 8790
	DefaultHost = "localhost"
)

// Config holds the palettepro configuration.
type Config struct {
	Theme           string            `json:"theme"`                     // Name of the active UI theme
	Language        string            `json:"language,omitempty"`        // Locale override (e.g. "es")
	DefaultCategory string            `json:"default_category"`          // Category shown on startup
	GallerySize     int               `json:"gallery_size"`              // Palettes per single-category gallery
	Search          search.Thresholds `json:"search"`                    // Match distance thresholds
	Related         harmony.Jitter    `json:"related"`                   // Related-color jitter
	Server          ServerConfig      `json:"server"`                    // HTTP server settings
	GenerationDelay string            `json:"generation_delay"`          // Pause before a batch is delivered (e.g. "800ms")
	CategoriesFile  string            `json:"categories_file,omitempty"` // User category TOML (default ~/.palettepro/categories.toml)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// GenerationDelayDuration returns the parsed generation delay (default: 800ms).
// A value of "0" disables the delay.
func (c Config) GenerationDelayDuration() time.Duration {
	if c.GenerationDelay != "" {
		if d, err := time.ParseDuration(c.GenerationDelay); err == nil && d >= 0 {
			return d
		}
	}
	return 800 * time.Millisecond
}

// CategoriesPath returns the user category file path.
func (c Config) CategoriesPath() (string, error) {
	if c.CategoriesFile != "" {
		return c.CategoriesFile, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "categories.toml"), nil
}

// Dir returns the path to the .palettepro directory.
// PALETTEPRO_HOME overrides the location.
func Dir() (string, error) {
	if dir := os.Getenv("PALETTEPRO_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".palettepro"), nil
}

// Path returns the path to the main config file.
func Path() (string, error) {
	configDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load loads the configuration from ~/.palettepro/config.json.
func Load() (Config, error) {
	configPath, err := Path()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		cfg := Default()
		if saveErr := Save(cfg); saveErr != nil {
			return cfg, nil // return defaults even if save fails
		}
		return cfg, nil
	} else if err != nil {
		return Config{}, err
	}

	// Start from defaults so missing keys get correct values.
	config := Default()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}

	if config.Theme == "" {
		config.Theme = "purple"
	}
	if config.GallerySize <= 0 {
		config.GallerySize = 24
	}
	if config.Search.Hex <= 0 || config.Search.Name <= 0 {
		config.Search = search.DefaultThresholds
	}
	if config.Server.Port <= 0 {
		config.Server.Port = DefaultPort
	}

	return config, nil
}

// Default returns a default configuration with all defaults set.
func Default() Config {
	return Config{
		Theme:           "purple",
		DefaultCategory: "All",
		GallerySize:     24,
		Search:          search.DefaultThresholds,
		Related:         harmony.DefaultJitter,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		GenerationDelay: "800ms",
	}
}

// Save saves the configuration to ~/.palettepro/config.json.
func Save(config Config) error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}
