package app

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pstuifzand/tui-templategen/internal/config"
	"github.com/pstuifzand/tui-templategen/internal/history"
	"github.com/pstuifzand/tui-templategen/internal/model"
	"github.com/pstuifzand/tui-templategen/internal/selection"
	"github.com/pstuifzand/tui-templategen/internal/socket"
	"github.com/pstuifzand/tui-templategen/internal/storage"
	"github.com/pstuifzand/tui-templategen/internal/theme"
	"github.com/pstuifzand/tui-templategen/internal/ui"
)

// Mode is the input mode shown in the status line
type Mode string

const (
	NormalMode Mode = "NORMAL"
	InputMode  Mode = "INPUT"
)

const autoSaveInterval = 5 * time.Second

// App is the main application controller
type App struct {
	screen       *ui.Screen
	cfg          *config.Config
	logger       *log.Logger
	form         *model.Form
	ctrl         *selection.Controller
	store        *storage.JSONStore
	backups      *storage.BackupManager
	sessionID    string
	view         *ui.FormView
	input        *ui.PropertyInput
	help         *ui.HelpScreen
	command      *ui.CommandMode
	splash       *ui.SplashScreen
	messages     *ui.MessageLogger
	properties   *ui.History // Names of properties added by hand
	keybindings  []KeyBinding
	socketServer *socket.Server
	statusMsg    string
	statusTime   time.Time
	dirty        bool
	autoSaveTime time.Time
	quit         bool
	debugMode    bool
	mode         Mode
}

// NewApp creates the application for a form file, opening the terminal
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	store := storage.NewJSONStore(filePath)
	form, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load form: %w", err)
	}

	screen, err := ui.NewScreenWithTheme(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	a := newApp(form, store, cfg, log.Default())
	a.screen = screen

	dataDir, err := config.GetDataDir()
	if err != nil {
		log.Printf("History and backups disabled: %v", err)
		return a, nil
	}

	if manager, err := history.NewManagerAt(filepath.Join(dataDir, "history")); err == nil {
		a.command = ui.NewCommandModeWithHistory(manager)
		if h, err := ui.NewHistoryWithManager(200, manager, history.PropertiesFile); err == nil {
			a.properties = h
		} else {
			log.Printf("Failed to load property history: %v", err)
		}
		a.refreshCompletions()
	} else {
		log.Printf("History disabled: %v", err)
	}

	if backups, err := storage.NewBackupManagerAt(filepath.Join(dataDir, "backups")); err == nil {
		a.backups = backups
	} else {
		log.Printf("Backups disabled: %v", err)
	}

	return a, nil
}

// newApp wires everything that does not need a terminal
func newApp(form *model.Form, store *storage.JSONStore, cfg *config.Config, logger *log.Logger) *App {
	ctrl := selection.NewController(form, logger)
	a := &App{
		cfg:          cfg,
		logger:       logger,
		form:         form,
		ctrl:         ctrl,
		store:        store,
		sessionID:    uuid.New().String()[:8],
		view:         ui.NewFormView(ctrl),
		input:        ui.NewPropertyInput(nil),
		help:         ui.NewHelpScreen(),
		command:      ui.NewCommandMode(),
		splash:       ui.NewSplashScreen(store.FilePath),
		messages:     ui.NewMessageLogger(20),
		properties:   ui.NewHistory(200),
		statusMsg:    "Ready",
		statusTime:   time.Now(),
		autoSaveTime: time.Now(),
		mode:         NormalMode,
	}

	a.keybindings = a.InitializeKeybindings()
	infos := make([]ui.KeyBindingInfo, len(a.keybindings))
	for i := range a.keybindings {
		infos[i] = &a.keybindings[i]
	}
	a.help.SetKeybindings(infos)

	if len(form.Groups) == 0 {
		a.splash.Show()
	}
	a.refreshCompletions()

	return a
}

// refreshCompletions feeds history and schema ids to the inputs
func (a *App) refreshCompletions() {
	a.input.SetCandidates(a.properties.GetAll())
	ids := make([]string, 0, len(a.form.Groups))
	for _, g := range a.form.Groups {
		ids = append(ids, g.ID)
	}
	a.command.SetCompletions(ids)
}

// SetSocketServer attaches a running socket server whose messages are
// applied on the event loop
func (a *App) SetSocketServer(server *socket.Server) {
	a.socketServer = server
}

// Run starts the main event loop. Terminal events, socket messages and
// render ticks are handled one at a time on this goroutine.
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				return
			}
		}
	}()

	var socketChan <-chan socket.Message
	if a.socketServer != nil {
		socketChan = a.socketServer.Messages()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
		case msg := <-socketChan:
			a.handleSocketMessage(msg)
		case <-ticker.C:
			a.render()
			a.autoSave()
		}
	}

	return nil
}

// autoSave writes the form when it has been dirty for a while
func (a *App) autoSave() {
	if !a.dirty || a.store.FilePath == "" || a.cfg.Get("autosave") == "false" {
		return
	}
	if time.Since(a.autoSaveTime) <= autoSaveInterval {
		return
	}
	if err := a.Save(); err != nil {
		a.SetStatus("Failed to save: " + err.Error())
		return
	}
	a.SetStatus("Saved")
}

// Close closes the application
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	if a.splash.IsVisible() {
		a.splash.Render(a.screen)
		a.renderStatus()
		a.screen.Show()
		return
	}

	width := a.screen.GetWidth()
	height := a.screen.GetHeight()

	header := " tgen"
	if a.store.FilePath != "" {
		header += ": " + filepath.Base(a.store.FilePath)
	}
	header += fmt.Sprintf("  %d schemas, %d columns", len(a.form.Groups), a.checkedCount())
	a.screen.DrawStringLimited(0, 0, header, width, a.screen.HeaderStyle())

	viewHeight := height - 2
	if a.command.IsActive() {
		viewHeight--
	}
	a.view.Render(a.screen, 1, viewHeight, a.input)

	if a.command.IsActive() {
		a.command.Render(a.screen, height-2)
	}
	a.renderStatus()

	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus() {
	width := a.screen.GetWidth()
	y := a.screen.GetHeight() - 1

	x := a.screen.DrawString(0, y, "-- "+string(a.mode)+" --", a.screen.StatusModeStyle())
	if a.statusMsg != "Ready" && time.Since(a.statusTime) <= 3*time.Second {
		x = a.screen.DrawStringLimited(x+1, y, a.statusMsg, width-x-14, a.screen.StatusMessageStyle())
	}
	if a.dirty {
		a.screen.DrawString(x+1, y, "(modified)", a.screen.StatusModifiedStyle())
	}
}

// checkedCount returns the number of template columns the form would export
func (a *App) checkedCount() int {
	count := 0
	for _, g := range a.form.Groups {
		if !g.Selected {
			continue
		}
		g.Walk(func(e *model.Entry) bool {
			if e.IsCheckbox() && e.Checked && len(e.Children) == 0 {
				count++
			}
			return true
		})
	}
	return count
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	if _, ok := ev.(*tcell.EventResize); ok {
		a.screen.Sync()
		return
	}

	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	switch {
	case a.command.IsActive():
		if cmd, done := a.command.HandleKey(keyEv); done {
			a.handleCommand(cmd)
		}
	case a.input.IsActive():
		a.handleInputKey(keyEv)
	case a.help.IsVisible():
		if keyEv.Key() == tcell.KeyEscape || keyEv.Rune() == '?' || keyEv.Rune() == 'q' {
			a.help.Hide()
		}
	default:
		a.handleKeypress(keyEv)
	}
}

// handleInputKey feeds a key to the property input. Enter commits the
// placeholder being edited, Escape drops it.
func (a *App) handleInputKey(ev *tcell.EventKey) {
	switch a.input.HandleKey(ev) {
	case ui.InputCancel:
		a.input.Cancel()
		a.mode = NormalMode
		placeholder := a.input.Entry()
		a.ctrl.DiscardPlaceholder(placeholder)
		a.view.Rebuild()
		if placeholder != nil && placeholder.Group != nil {
			a.view.SelectEntry(placeholder.Group.Sentinel())
		}
	case ui.InputCommit:
		if a.input.Text() == "" {
			a.SetStatus("Property name is empty")
			return
		}
		a.input.Stop()
		a.mode = NormalMode
		a.commitPlaceholder(a.input.Entry())
	}
}

// commitPlaceholder turns placeholder into a checked property
func (a *App) commitPlaceholder(placeholder *model.Entry) {
	entry, err := a.ctrl.CommitPlaceholder(placeholder)
	if err != nil {
		a.SetStatus("Failed to add property: " + err.Error())
		return
	}

	if err := a.properties.AddUnique(entry.Property); err != nil {
		a.logger.Printf("Failed to save property history: %v", err)
	}
	a.refreshCompletions()

	a.view.Rebuild()
	a.view.SelectEntry(entry)
	a.markDirty(fmt.Sprintf("Added %s to %s", entry.Property, entry.Group.ID))
}

// startInput begins editing a placeholder row
func (a *App) startInput(placeholder *model.Entry) {
	a.view.Rebuild()
	a.view.SelectEntry(placeholder)
	a.input.Start(placeholder)
	a.mode = InputMode
}

// addProperty opens a placeholder in the current schema's section
func (a *App) addProperty() {
	g := a.view.CurrentGroup()
	if g == nil {
		a.SetStatus("Move to a schema to add a property")
		return
	}
	placeholder, err := a.ctrl.AddProperty(selection.Add(g.ID))
	if err != nil {
		a.SetStatus(err.Error())
		return
	}
	if !g.Expanded {
		// Sections only open together
		a.ctrl.ExpandAll()
	}
	a.startInput(placeholder)
}

// activate runs the action of the row under the cursor
func (a *App) activate() {
	row := a.view.Selected()
	switch row.Kind {
	case ui.RowExpandAll:
		a.ctrl.ExpandAll()
		a.view.Rebuild()
		a.SetStatus(a.ctrl.ExpandLabel())
		return
	case ui.RowSelectAll:
		a.ctrl.SelectAll()
		a.view.Rebuild()
		a.markDirty("Selected all properties")
		return
	case ui.RowGroup:
		a.toggleCurrent()
		return
	}

	switch row.Entry.Kind {
	case model.KindSentinel:
		a.addProperty()
	case model.KindPlaceholder:
		a.startInput(row.Entry)
	default:
		a.toggleCurrent()
	}
}

// toggleCurrent flips the checkbox under the cursor
func (a *App) toggleCurrent() {
	row := a.view.Selected()
	switch row.Kind {
	case ui.RowSelectAll:
		a.ctrl.SelectAll()
		a.markDirty("Selected all properties")
	case ui.RowGroup:
		a.ctrl.SetGroupSelected(row.Group, !row.Group.Selected)
		a.markDirty("")
	case ui.RowEntry:
		if !row.Entry.IsCheckbox() {
			return
		}
		a.ctrl.Toggle(row.Entry)
		a.markDirty("")
	}
	a.view.Rebuild()
}

// selectLocal checks or unchecks the whole current schema
func (a *App) selectLocal(checked bool) {
	g := a.view.CurrentGroup()
	if g == nil {
		a.SetStatus("Move to a schema first")
		return
	}
	cmd := selection.Unselect(g.ID)
	if checked {
		cmd = selection.Select(g.ID)
	}
	if err := a.ctrl.SelectLocal(cmd); err != nil {
		a.SetStatus(err.Error())
		return
	}
	a.view.Rebuild()
	a.markDirty(fmt.Sprintf("%s %s", cmd.Kind, g.ID))
}

// markDirty flags unsaved changes and optionally shows a status message
func (a *App) markDirty(msg string) {
	if !a.dirty {
		a.autoSaveTime = time.Now()
	}
	a.dirty = true
	if msg != "" {
		a.SetStatus(msg)
	}
}

// Save writes the form, backing up the previous file first
func (a *App) Save() error {
	if a.backups != nil && a.store.FileExists() {
		if previous, err := a.store.Load(); err == nil {
			if _, err := a.backups.CreateBackup(previous, a.store.FilePath, a.sessionID); err != nil {
				a.logger.Printf("Failed to create backup: %v", err)
			}
		}
	}
	if err := a.store.Save(a.form); err != nil {
		return err
	}
	a.dirty = false
	a.autoSaveTime = time.Now()
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
	a.messages.AddMessage(msg)
	if a.debugMode {
		a.logger.Printf("status: %s", msg)
	}
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
