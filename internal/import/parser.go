package import_parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown ImportFormat = "markdown"
	FormatColumns  ImportFormat = "columns"
	FormatAuto     ImportFormat = "auto" // Auto-detect from extension
)

// Mark is the checkbox state read for a group or one of its properties
type Mark struct {
	Group    string // Schema id or title
	Property string // Empty for the group checkbox
	Checked  bool
}

// Parser interface for different import formats
type Parser interface {
	Parse(content string) ([]Mark, error)
	Name() string
}

// ImportFile parses content and returns the marks it contains
func ImportFile(content string, format ImportFormat) ([]Mark, error) {
	var parser Parser

	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatColumns:
		parser = &ColumnListParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	marks, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return marks, nil
}

// DetectFormat picks the format from the file extension. Everything that
// is not markdown is read as a column list, template YAML included.
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatColumns
}

// Result reports what Apply changed
type Result struct {
	Applied int
	Unknown []string // Marks naming groups or properties the form lacks
}

// Apply copies marks onto the form's checkboxes as read, without the
// cascade rule. With replace every checkbox is cleared first.
func Apply(form *model.Form, marks []Mark, replace bool) Result {
	if replace {
		for _, g := range form.Groups {
			g.Selected = false
		}
		form.Walk(func(e *model.Entry) bool {
			e.Checked = false
			return true
		})
	}

	var result Result
	for _, m := range marks {
		g := findGroup(form, m.Group)
		if g == nil {
			result.Unknown = append(result.Unknown, m.Group)
			continue
		}
		if m.Property == "" {
			g.Selected = m.Checked
			result.Applied++
			continue
		}

		e := g.Find(m.Property)
		if e == nil {
			// Hand-added entries carry a bare name
			e = g.Find(strings.TrimPrefix(m.Property, g.ID+"."))
		}
		if e == nil || !e.IsCheckbox() {
			result.Unknown = append(result.Unknown, g.ID+"/"+m.Property)
			continue
		}
		e.Checked = m.Checked
		result.Applied++
	}
	return result
}

// findGroup matches a group by id, then by title
func findGroup(form *model.Form, name string) *model.Group {
	if g := form.Group(name); g != nil {
		return g
	}
	for _, g := range form.Groups {
		if g.Title != "" && g.Title == name {
			return g
		}
	}
	return nil
}
