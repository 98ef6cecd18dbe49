package app

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pstuifzand/tui-templategen/internal/export"
	importer "github.com/pstuifzand/tui-templategen/internal/import"
	"github.com/pstuifzand/tui-templategen/internal/selection"
	"github.com/pstuifzand/tui-templategen/internal/storage"
)

// parseCommand splits a command line into words, honoring single and
// double quotes and backslash escapes
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	inWord := false
	escaped := false

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}

	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		if a.dirty {
			a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		} else {
			a.quit = true
		}
	case "q!", "quit!":
		a.quit = true
	case "w", "write":
		if len(parts) > 1 {
			a.store = storage.NewJSONStore(parts[1])
		}
		a.saveWithStatus()
	case "wq", "x":
		if a.saveWithStatus() {
			a.quit = true
		}
	case "export":
		a.exportYAML(argument(parts))
	case "markdown", "md":
		a.exportMarkdown(argument(parts))
	case "import":
		a.handleImportCommand(parts)
	case "select", "unselect", "add":
		if len(parts) < 2 {
			a.SetStatus(fmt.Sprintf("Usage: :%s <schema>", parts[0]))
			return
		}
		a.dispatch(parts[0] + ":" + parts[1])
	case "selectall":
		a.dispatch(selection.CommandSelectAll)
	case "expandall":
		a.dispatch(selection.CommandExpandAll)
	case "backups":
		a.handleBackupsCommand()
	case "restore":
		a.handleRestoreCommand(parts)
	case "set", "set!":
		a.handleSetCommand(parts)
	case "messages":
		a.handleMessagesCommand()
	case "dump":
		a.logger.Printf("form dump:\n%s", spew.Sdump(a.ctrl.State(), a.form))
		a.SetStatus("Form state written to the log")
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetStatus("Unknown command: " + parts[0])
	}
}

func argument(parts []string) string {
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// dispatch runs a control identifier through the selection controller.
// Add commands open the property input on the new placeholder.
func (a *App) dispatch(id string) error {
	if cmd, err := selection.ParseCommand(id); err == nil && cmd.Kind == selection.CommandAdd {
		placeholder, err := a.ctrl.AddProperty(cmd)
		if err != nil {
			a.SetStatus(err.Error())
			return err
		}
		if !placeholder.Group.Expanded {
			a.ctrl.ExpandAll()
		}
		a.startInput(placeholder)
		return nil
	}

	if err := a.ctrl.Dispatch(id); err != nil {
		a.SetStatus(err.Error())
		return err
	}
	a.view.Rebuild()
	if id == selection.CommandExpandAll {
		a.SetStatus(a.ctrl.ExpandLabel())
		return nil
	}
	a.markDirty(id)
	return nil
}

// outputPath returns the template file name, honoring session overrides
func (a *App) outputPath() string {
	if out := a.cfg.Get("output"); out != "" {
		return out
	}
	return a.cfg.Output
}

// exportYAML writes the spreadsheet template
func (a *App) exportYAML(path string) bool {
	if path == "" {
		path = a.outputPath()
	}
	if err := export.WriteYAML(a.form, path); err != nil {
		a.SetStatus("Failed to export: " + err.Error())
		return false
	}
	a.SetStatus(fmt.Sprintf("Wrote %d columns to %s", a.checkedCount(), path))
	return true
}

// exportMarkdown writes the form as a markdown checklist
func (a *App) exportMarkdown(path string) bool {
	if path == "" {
		path = strings.TrimSuffix(a.outputPath(), ".yaml") + ".md"
	}
	if err := export.ExportToMarkdown(a.form, path); err != nil {
		a.SetStatus("Failed to export: " + err.Error())
		return false
	}
	a.SetStatus("Exported markdown to " + path)
	return true
}

// saveWithStatus saves the form and reports the outcome
func (a *App) saveWithStatus() bool {
	if a.store.FilePath == "" {
		a.SetStatus("No file name, use :w <file>")
		return false
	}
	if err := a.Save(); err != nil {
		a.SetStatus("Failed to save: " + err.Error())
		return false
	}
	a.SetStatus("Saved " + a.store.FilePath)
	return true
}

// handleImportCommand applies a markdown checklist or column list to the
// form. Column lists replace the whole selection.
func (a *App) handleImportCommand(parts []string) {
	if len(parts) < 2 {
		a.SetStatus("Usage: :import <file>")
		return
	}

	data, err := os.ReadFile(parts[1])
	if err != nil {
		a.SetStatus("Failed to import: " + err.Error())
		return
	}
	format := importer.DetectFormat(parts[1])
	marks, err := importer.ImportFile(string(data), format)
	if err != nil {
		a.SetStatus("Failed to import: " + err.Error())
		return
	}

	result := importer.Apply(a.form, marks, format == importer.FormatColumns)
	for _, name := range result.Unknown {
		a.logger.Printf("import %s: unknown %s", parts[1], name)
	}
	a.view.Rebuild()

	msg := fmt.Sprintf("Imported %d marks from %s", result.Applied, parts[1])
	if len(result.Unknown) > 0 {
		msg += fmt.Sprintf(", %d unknown", len(result.Unknown))
	}
	a.markDirty(msg)
}

// handleSetCommand shows or sets configuration: :set [key[=value]] for the
// session, :set! key=value to write it to the config file
func (a *App) handleSetCommand(parts []string) {
	if len(parts) < 2 {
		all := a.cfg.GetAll()
		if len(all) == 0 {
			a.SetStatus("No settings")
			return
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + all[k]
		}
		a.SetStatus(strings.Join(pairs, " "))
		return
	}

	key, value, ok := strings.Cut(parts[1], "=")
	if !ok {
		a.SetStatus(fmt.Sprintf("%s=%s", key, a.cfg.Get(key)))
		return
	}
	if parts[0] != "set!" {
		a.cfg.Set(key, value)
		a.SetStatus(fmt.Sprintf("Set %s=%s", key, value))
		return
	}

	a.cfg.Persist(key, value)
	if err := a.cfg.Save(); err != nil {
		a.SetStatus(fmt.Sprintf("Error saving config: %v", err))
		return
	}
	a.SetStatus(fmt.Sprintf("Saved %s=%s", key, value))
}

// handleMessagesCommand shows the most recent status messages
func (a *App) handleMessagesCommand() {
	a.SetStatus(strings.Join(a.messages.Recent(5), " | "))
}
