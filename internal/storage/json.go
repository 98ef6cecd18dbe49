package storage

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

// JSONStore handles form file persistence
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load loads a form from a JSON file
func (s *JSONStore) Load() (*model.Form, error) {
	if s.FilePath == "" {
		return model.NewForm(), nil
	}

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty form if file doesn't exist
			return model.NewForm(), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var form model.Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if form.Groups == nil {
		form.Groups = make([]*model.Group, 0)
	}

	// Restore group and parent pointers after deserialization
	form.RestoreParents()

	return &form, nil
}

// Save saves a form to a JSON file. Placeholder rows are transient and
// are left out.
func (s *JSONStore) Save(form *model.Form) error {
	if s.FilePath == "" {
		return fmt.Errorf("no file path set")
	}

	// Ensure directory exists
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(withoutPlaceholders(form), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the form file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

func withoutPlaceholders(form *model.Form) *model.Form {
	out := &model.Form{Groups: make([]*model.Group, 0, len(form.Groups))}
	for _, g := range form.Groups {
		copied := *g
		copied.Entries = filterEntries(g.Entries)
		out.Groups = append(out.Groups, &copied)
	}
	return out
}

func filterEntries(entries []*model.Entry) []*model.Entry {
	result := make([]*model.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == model.KindPlaceholder {
			continue
		}
		copied := *e
		copied.Children = filterEntries(e.Children)
		result = append(result, &copied)
	}
	return result
}
