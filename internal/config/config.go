package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const appDirName = "tui-templategen"

// Config is the contents of config.toml. Settings holds free-form keys for
// `:set`; session values set at runtime override them and are never saved.
type Config struct {
	Theme              string            `toml:"theme"`
	ListingURL         string            `toml:"listing_url"`
	IngestEnv          string            `toml:"ingest_env"`
	SchemaEnv          string            `toml:"schema_env"`
	ExcludedProperties []string          `toml:"excluded_properties"`
	Output             string            `toml:"output"`
	Settings           map[string]string `toml:"settings"`

	sessionSettings map[string]string
	// path is the file the config was read from, and where Save writes
	path string
}

func defaultConfig() *Config {
	return &Config{
		Theme:              "tokyo-night",
		ListingURL:         "http://api.ingest.{env}.data.humancellatlas.org/schemas/search/latestSchemas",
		IngestEnv:          "dev",
		SchemaEnv:          "dev.data",
		ExcludedProperties: []string{"describedBy", "schema_version", "schema_type", "provenance"},
		Output:             "output.yaml",
		Settings:           make(map[string]string),
		sessionSettings:    make(map[string]string),
	}
}

// Load reads ~/.config/tui-templategen/config.toml. Without a home
// directory the defaults are used.
func Load() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return defaultConfig(), nil
	}
	return LoadFromFile(filepath.Join(dir, "config.toml"))
}

// LoadFromFile reads the config at path. A missing file yields the defaults,
// and keys absent from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := defaultConfig()
	for _, field := range []struct{ value, def *string }{
		{&c.Theme, &d.Theme},
		{&c.ListingURL, &d.ListingURL},
		{&c.IngestEnv, &d.IngestEnv},
		{&c.SchemaEnv, &d.SchemaEnv},
		{&c.Output, &d.Output},
	} {
		if *field.value == "" {
			*field.value = *field.def
		}
	}
	// an explicit empty list turns exclusions off
	if c.ExcludedProperties == nil {
		c.ExcludedProperties = d.ExcludedProperties
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	c.sessionSettings = make(map[string]string)
}

// GetConfigDir returns ~/.config/tui-templategen
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// GetDataDir returns ~/.local/share/tui-templategen, the parent of the
// history and backup directories
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appDirName), nil
}

// Set sets a value for this session only
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Persist sets a value in Settings, so the next Save writes it. It also
// drops a session value hiding it.
func (c *Config) Persist(key, value string) {
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	c.Settings[key] = value
	delete(c.sessionSettings, key)
}

// Get returns the session value for key, else the persisted one, else ""
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	return c.Settings[key]
}

// GetAll returns a copy of every setting with session values applied
func (c *Config) GetAll() map[string]string {
	result := maps.Clone(c.Settings)
	if result == nil {
		result = make(map[string]string)
	}
	maps.Copy(result, c.sessionSettings)
	return result
}

// Save writes the config back to the file it was loaded from, or to the
// standard location. Session values are not written.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = filepath.Join(dir, "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return c.SaveToFile(path)
}

// SaveToFile writes the config as TOML to path
func (c *Config) SaveToFile(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
