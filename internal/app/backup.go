package app

import (
	"fmt"
	"strconv"

	"github.com/pstuifzand/tui-templategen/internal/model"
	"github.com/pstuifzand/tui-templategen/internal/selection"
	"github.com/pstuifzand/tui-templategen/internal/storage"
	"github.com/pstuifzand/tui-templategen/internal/ui"
)

// findBackups returns the backups of the open form file, newest first
func (a *App) findBackups() ([]storage.BackupMetadata, bool) {
	if a.store.FilePath == "" {
		a.SetStatus("No file to find backups for")
		return nil, false
	}
	if a.backups == nil {
		a.SetStatus("Backups are not available")
		return nil, false
	}

	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	if err != nil || len(backups) == 0 {
		a.SetStatus("No backups found for this file")
		return nil, false
	}

	newestFirst := make([]storage.BackupMetadata, len(backups))
	for i, b := range backups {
		newestFirst[len(backups)-1-i] = b
	}
	return newestFirst, true
}

// handleBackupsCommand reports the backups of the open form
func (a *App) handleBackupsCommand() {
	backups, ok := a.findBackups()
	if !ok {
		return
	}
	latest := backups[0]
	a.SetStatus(fmt.Sprintf("%d backups, latest %s (%s)", len(backups), latest.Timestamp.Format("2006-01-02 15:04:05"), latest.SessionID))
}

// handleRestoreCommand replaces the form with the n-th newest backup (1 = newest)
func (a *App) handleRestoreCommand(parts []string) {
	n := 1
	if len(parts) > 1 {
		parsed, err := strconv.Atoi(parts[1])
		if err != nil || parsed < 1 {
			a.SetStatus("Usage: :restore [n]")
			return
		}
		n = parsed
	}

	backups, ok := a.findBackups()
	if !ok {
		return
	}
	if n > len(backups) {
		a.SetStatus(fmt.Sprintf("Only %d backups available", len(backups)))
		return
	}

	backup := backups[n-1]
	form, err := storage.LoadBackup(backup.FilePath)
	if err != nil {
		a.SetStatus(fmt.Sprintf("Failed to restore backup: %v", err))
		return
	}

	a.replaceForm(form)
	a.markDirty(fmt.Sprintf("Restored backup from %s", backup.Timestamp.Format("2006-01-02 15:04:05")))
}

// replaceForm swaps in a new form with fresh selection state
func (a *App) replaceForm(form *model.Form) {
	if a.input.IsActive() {
		a.input.Cancel()
		a.mode = NormalMode
	}
	a.form = form
	a.ctrl = selection.NewController(form, a.logger)
	a.view = ui.NewFormView(a.ctrl)
	if len(form.Groups) > 0 {
		a.splash.Hide()
	} else {
		a.splash.Show()
	}
	a.refreshCompletions()
}
