package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("output", "template.yaml")
	if cfg.Get("output") != "template.yaml" {
		t.Errorf("Expected 'template.yaml', got '%s'", cfg.Get("output"))
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	// Test getting a value that doesn't exist
	if cfg.Get("nonexistent") != "" {
		t.Errorf("Expected empty string for nonexistent key, got '%s'", cfg.Get("nonexistent"))
	}

	cfg.Set("test", "value")
	if cfg.Get("test") != "value" {
		t.Errorf("Expected 'value', got '%s'", cfg.Get("test"))
	}
}

func TestSessionOverridesPersisted(t *testing.T) {
	cfg := &Config{Settings: map[string]string{"key": "persisted", "other": "kept"}}
	cfg.Set("key", "session")

	assert.Equal(t, "session", cfg.Get("key"))
	assert.Equal(t, map[string]string{"key": "session", "other": "kept"}, cfg.GetAll())
}

func TestGetAllReturnsACopy(t *testing.T) {
	cfg := &Config{
		sessionSettings: make(map[string]string),
	}

	cfg.Set("original", "value")

	all := cfg.GetAll()
	all["original"] = "modified"

	if cfg.Get("original") != "value" {
		t.Errorf("GetAll() should return a copy, not a reference")
	}
}

func TestNilSessionSettings(t *testing.T) {
	cfg := &Config{}

	cfg.Set("key", "value")
	if cfg.Get("key") != "value" {
		t.Errorf("Set should initialize nil sessionSettings")
	}

	cfg2 := &Config{}
	if cfg2.Get("key") != "" {
		t.Errorf("Get should return empty string for nil sessionSettings")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, "output.yaml", cfg.Output)
	assert.Contains(t, cfg.ExcludedProperties, "provenance")
	assert.NotNil(t, cfg.sessionSettings)
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig().ListingURL, cfg.ListingURL)
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `theme = "gruvbox"
schema_env = "staging.data"
excluded_properties = []

[settings]
autosave = "false"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, "staging.data", cfg.SchemaEnv)
	assert.Equal(t, "dev", cfg.IngestEnv)
	assert.Empty(t, cfg.ExcludedProperties)
	assert.NotNil(t, cfg.ExcludedProperties)
	assert.Equal(t, "output.yaml", cfg.Output)
	assert.Equal(t, "false", cfg.Get("autosave"))
}

func TestLoadFromInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = "), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := defaultConfig()
	cfg.Settings["autosave"] = "true"
	cfg.Set("session-only", "x")

	require.NoError(t, cfg.SaveToFile(path))
	loaded, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "true", loaded.Get("autosave"))
	assert.Equal(t, "", loaded.Get("session-only"))
	assert.Equal(t, cfg.ExcludedProperties, loaded.ExcludedProperties)
}

func TestPersistAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	cfg.Set("autosave", "false")
	cfg.Persist("autosave", "true")
	assert.Equal(t, "true", cfg.Get("autosave"))
	require.NoError(t, cfg.Save())

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "true", loaded.Get("autosave"))
}
