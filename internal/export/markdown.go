package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/tui-templategen/internal/model"
)

// ExportToMarkdown exports a form to a markdown file as a task list.
// Groups become headings and entries become checklist items indented by depth.
func ExportToMarkdown(form *model.Form, filePath string) error {
	content := RenderMarkdown(form)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// RenderMarkdown renders the markdown checklist for a form
func RenderMarkdown(form *model.Form) string {
	var sb strings.Builder
	for i, g := range form.Groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		title := g.Title
		if title == "" {
			title = g.ID
		}
		fmt.Fprintf(&sb, "## %s %s", checkMark(g.Selected), title)
		if title != g.ID {
			fmt.Fprintf(&sb, " (`%s`)", g.ID)
		}
		sb.WriteString("\n\n")
		for _, e := range g.Entries {
			writeEntryAsMarkdown(&sb, e, 0)
		}
	}
	return sb.String()
}

// writeEntryAsMarkdown recursively writes an entry and its children.
// Sentinel and placeholder rows are not part of the document.
func writeEntryAsMarkdown(sb *strings.Builder, e *model.Entry, depth int) {
	if !e.IsCheckbox() {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "- %s %s", checkMark(e.Checked), e.Label)
	if e.Label != e.Property {
		fmt.Fprintf(sb, " (`%s`)", e.Property)
	}
	sb.WriteString("\n")

	for _, child := range e.Children {
		writeEntryAsMarkdown(sb, child, depth+1)
	}
}

func checkMark(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
