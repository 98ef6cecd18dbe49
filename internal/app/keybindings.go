package app

import (
	"github.com/gdamore/tcell/v2"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding as shown in help
func (kb *KeyBinding) GetKey() string {
	if kb.Key == ' ' {
		return "space"
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Move down",
			Handler: func(app *App) {
				app.view.SelectNext()
			},
		},
		{
			Key:         'k',
			Description: "Move up",
			Handler: func(app *App) {
				app.view.SelectPrev()
			},
		},
		{
			Key:         'n',
			Description: "Next schema",
			Handler: func(app *App) {
				app.view.SelectNextGroup()
			},
		},
		{
			Key:         'p',
			Description: "Previous schema",
			Handler: func(app *App) {
				app.view.SelectPrevGroup()
			},
		},
		{
			Key:         'g',
			Description: "Go to first row",
			Handler: func(app *App) {
				app.view.SelectFirst()
			},
		},
		{
			Key:         'G',
			Description: "Go to last row",
			Handler: func(app *App) {
				app.view.SelectLast()
			},
		},
		{
			Key:         'e',
			Description: "Expand or collapse all sections",
			Handler: func(app *App) {
				app.ctrl.ExpandAll()
				app.view.Rebuild()
				app.SetStatus(app.ctrl.ExpandLabel())
			},
		},
		{
			Key:         'a',
			Description: "Select all properties of every schema",
			Handler: func(app *App) {
				app.ctrl.SelectAll()
				app.view.Rebuild()
				app.markDirty("Selected all properties")
			},
		},
		{
			Key:         's',
			Description: "Select every property of the current schema",
			Handler: func(app *App) {
				app.selectLocal(true)
			},
		},
		{
			Key:         'u',
			Description: "Unselect every property of the current schema",
			Handler: func(app *App) {
				app.selectLocal(false)
			},
		},
		{
			Key:         ' ',
			Description: "Toggle the checkbox under the cursor",
			Handler: func(app *App) {
				app.toggleCurrent()
			},
		},
		{
			Key:         '+',
			Description: "Add a new property to the current schema",
			Handler: func(app *App) {
				app.addProperty()
			},
		},
		{
			Key:         'w',
			Description: "Write the template YAML",
			Handler: func(app *App) {
				app.exportYAML("")
			},
		},
		{
			Key:         'm',
			Description: "Write a markdown checklist",
			Handler: func(app *App) {
				app.exportMarkdown("")
			},
		},
		{
			Key:         'S',
			Description: "Save the form",
			Handler: func(app *App) {
				app.saveWithStatus()
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         ':',
			Description: "Command line",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.handleCommand("q")
			},
		},
	}
}

// GetKeybindingByKey returns a keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.logger.Printf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers())
	}

	if a.splash.IsVisible() && len(a.form.Groups) == 0 && ev.Rune() != ':' && ev.Rune() != 'q' {
		return
	}

	switch ev.Key() {
	case tcell.KeyDown:
		a.view.SelectNext()
		return
	case tcell.KeyUp:
		a.view.SelectPrev()
		return
	case tcell.KeyPgDn:
		a.view.ScrollPageDown(a.pageSize())
		return
	case tcell.KeyPgUp:
		a.view.ScrollPageUp(a.pageSize())
		return
	case tcell.KeyEnter:
		a.activate()
		return
	case tcell.KeyCtrlS:
		a.saveWithStatus()
		return
	case tcell.KeyRune:
		if kb := a.GetKeybindingByKey(ev.Rune()); kb != nil {
			kb.Handler(a)
		}
	}
}

// pageSize returns the number of form rows visible at once
func (a *App) pageSize() int {
	if a.screen == nil {
		return 10
	}
	return a.screen.GetHeight() - 2
}
