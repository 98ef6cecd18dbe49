package export

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

// Tab describes one spreadsheet tab of the generated template
type Tab struct {
	DisplayName string   `yaml:"display_name"`
	Columns     []string `yaml:"columns"`
}

// Template is the document written for the spreadsheet generator
type Template struct {
	Tabs []map[string]Tab `yaml:"tabs"`
}

// BuildTemplate collects a tab for every selected schema with the checked
// leaf properties that belong to it as columns
func BuildTemplate(form *model.Form) *Template {
	tmpl := &Template{Tabs: make([]map[string]Tab, 0)}
	for _, g := range form.Groups {
		if !g.Selected {
			continue
		}
		tab := Tab{
			DisplayName: g.Title,
			Columns:     make([]string, 0),
		}
		if tab.DisplayName == "" {
			tab.DisplayName = g.ID
		}
		g.Walk(func(e *model.Entry) bool {
			if e.IsCheckbox() && e.Checked && len(e.Children) == 0 {
				tab.Columns = append(tab.Columns, ColumnName(e))
			}
			return true
		})
		tmpl.Tabs = append(tmpl.Tabs, map[string]Tab{g.ID: tab})
	}
	return tmpl
}

// ColumnName returns the dotted column path of an entry. Entries added by
// hand carry a bare name and get the schema prefix.
func ColumnName(e *model.Entry) string {
	if e.Group == nil || strings.HasPrefix(e.Property, e.Group.ID+".") {
		return e.Property
	}
	return e.Group.ID + "." + e.Property
}

// Encode renders the template document as YAML
func (t *Template) Encode() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	return data, nil
}

// WriteYAML writes the template for form to filePath
func WriteYAML(form *model.Form, filePath string) error {
	data, err := BuildTemplate(form).Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	return nil
}
