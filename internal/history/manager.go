package history

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// PropertiesFile holds the names of properties the user added by hand
	PropertiesFile = "properties.toml"
	// CommandsFile holds the command line history
	CommandsFile = "commands.toml"
)

// Manager reads and writes history lists as TOML files in one directory
type Manager struct {
	dir string
}

type historyFile struct {
	Entries []string `toml:"entries"`
}

// NewManagerAt creates dir when needed and returns a Manager over it
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

func (m *Manager) Dir() string { return m.dir }

// Load returns the entries in name, oldest first. A missing file is an empty
// history. So is an unreadable TOML file, which is logged and later
// overwritten by Save.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history %s: %w", name, err)
	}

	var file historyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		log.Printf("Ignoring corrupt history %s: %v", name, err)
		return nil, nil
	}
	return file.Entries, nil
}

// Save replaces the contents of name with entries
func (m *Manager) Save(name string, entries []string) error {
	data, err := toml.Marshal(historyFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write history %s: %w", name, err)
	}
	return nil
}
