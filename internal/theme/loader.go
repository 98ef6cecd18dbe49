package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// colorSlots maps TOML color keys onto the fields of Colors
func colorSlots(c *Colors) map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"tree_normal_text":     &c.TreeNormalText,
		"tree_selected_item":   &c.TreeSelectedItem,
		"tree_expanded_arrow":  &c.TreeExpandedArrow,
		"tree_collapsed_arrow": &c.TreeCollapsedArrow,
		"group_header":         &c.GroupHeader,
		"checkbox_checked":     &c.CheckboxChecked,
		"checkbox_unchecked":   &c.CheckboxUnchecked,
		"placeholder":          &c.Placeholder,
		"sentinel":             &c.Sentinel,
		"control_button":       &c.ControlButton,
		"editor_text":          &c.EditorText,
		"editor_cursor":        &c.EditorCursor,
		"command_prompt":       &c.CommandPrompt,
		"command_text":         &c.CommandText,
		"command_cursor":       &c.CommandCursor,
		"help_background":      &c.HelpBackground,
		"help_border":          &c.HelpBorder,
		"help_title":           &c.HelpTitle,
		"help_content":         &c.HelpContent,
		"status_mode":          &c.StatusMode,
		"status_message":       &c.StatusMessage,
		"status_modified":      &c.StatusModified,
		"status_error":         &c.StatusError,
		"header_title":         &c.HeaderTitle,
	}
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tui-templategen", "themes"),
			filepath.Join(home, ".local", "share", "tui-templategen", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) (*Theme, error) {
	t := TokyoNight()
	slots := colorSlots(&t.Colors)

	for key, value := range config.Colors {
		slot, ok := slots[key]
		if !ok {
			return nil, fmt.Errorf("unknown theme color %q", key)
		}
		if value == "" {
			continue
		}
		c, err := ParseColor(value)
		if err != nil {
			return nil, fmt.Errorf("theme color %s: %w", key, err)
		}
		*slot = c
	}

	if config.Name != "" {
		t.Name = config.Name
	}

	return t, nil
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
