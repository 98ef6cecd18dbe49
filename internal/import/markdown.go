package import_parser

import (
	"bufio"
	"fmt"
	"strings"
)

// MarkdownParser reads the checklist written by the markdown export
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse reads schema headings and checklist items. Lines without a
// checkbox are ignored.
func (p *MarkdownParser) Parse(content string) ([]Mark, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var marks []Mark
	group := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			level, text := parseHeader(line)
			if level < 0 {
				continue
			}
			checked, name, ok := parseCheckItem(text)
			if !ok {
				group = text
				continue
			}
			group = name
			marks = append(marks, Mark{Group: name, Checked: checked})
			continue
		}

		if level, text := parseListItem(line); level >= 0 {
			checked, name, ok := parseCheckItem(text)
			if !ok {
				continue
			}
			if group == "" {
				return nil, fmt.Errorf("line %d: checklist item outside a schema heading", lineNo)
			}
			marks = append(marks, Mark{Group: group, Property: name, Checked: checked})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}

// parseHeader extracts level and text from markdown header
func parseHeader(line string) (level int, text string) {
	level = 0
	for i := 0; i < len(line) && line[i] == '#'; i++ {
		level++
	}

	if level == 0 || level > len(line) {
		return -1, ""
	}

	text = strings.TrimSpace(line[level:])
	return level - 1, text // Convert to 0-based level
}

// parseListItem extracts indentation level and text from list item
func parseListItem(line string) (level int, text string) {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' {
			indent++
		} else if line[i] == '\t' {
			indent += 2 // Treat tab as 2 spaces
		} else {
			break
		}
	}

	trimmed := strings.TrimSpace(line)

	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		text = strings.TrimSpace(trimmed[2:])
		level = indent / 2 // 2 spaces per level
		return level, text
	}

	return -1, ""
}

// parseCheckItem splits "[x] Label (`name`)" into its state and the name.
// Without a backquoted name the label is the name.
func parseCheckItem(text string) (checked bool, name string, ok bool) {
	switch {
	case strings.HasPrefix(text, "[x] "), strings.HasPrefix(text, "[X] "):
		checked = true
	case strings.HasPrefix(text, "[ ] "):
	default:
		return false, "", false
	}

	rest := strings.TrimSpace(text[4:])
	if strings.HasSuffix(rest, "`)") {
		if i := strings.LastIndex(rest, " (`"); i >= 0 {
			rest = rest[i+3 : len(rest)-2]
		}
	}
	if rest == "" {
		return false, "", false
	}
	return checked, rest, true
}
