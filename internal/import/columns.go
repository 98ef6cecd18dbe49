package import_parser

import (
	"bufio"
	"fmt"
	"strings"
)

// ColumnListParser reads dotted column names, one per line. The column
// lists of a template YAML file are read the same way; keys are skipped.
type ColumnListParser struct{}

func (p *ColumnListParser) Name() string {
	return "Column list"
}

// Parse returns a checked mark for every column and for the schema each
// column belongs to
func (p *ColumnListParser) Parse(content string) ([]Mark, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var marks []Mark
	groups := make(map[string]bool)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())

		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasSuffix(text, ":") || strings.Contains(text, ": ") {
			continue
		}
		text = strings.TrimSpace(strings.TrimPrefix(text, "- "))
		text = strings.Trim(text, `"'`)

		schemaID, _, ok := strings.Cut(text, ".")
		if !ok || schemaID == "" {
			return nil, fmt.Errorf("line %d: column %q has no schema prefix", lineNo, text)
		}

		if !groups[schemaID] {
			groups[schemaID] = true
			marks = append(marks, Mark{Group: schemaID, Checked: true})
		}
		marks = append(marks, Mark{Group: schemaID, Property: text, Checked: true})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}
