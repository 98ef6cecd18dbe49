package app

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-templategen/internal/selection"
	"github.com/pstuifzand/tui-templategen/internal/socket"
)

// handleSocketMessage applies a message received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	a.logger.Printf("Received socket message: command=%s, text=%s", msg.Command, msg.Text)

	var response *socket.Response
	switch msg.Command {
	case socket.CommandState:
		state := a.ctrl.State()
		response = &socket.Response{
			Success: true,
			Message: fmt.Sprintf("expanded=%t selected=%t schemas=%d columns=%d",
				state.Expanded, state.Selected, len(a.form.Groups), a.checkedCount()),
		}
	case socket.CommandSave:
		if a.saveWithStatus() {
			response = &socket.Response{Success: true, Message: "Saved " + a.store.FilePath}
		} else {
			response = &socket.Response{Success: false, Message: a.statusMsg}
		}
	default:
		if err := a.applyRemoteCommand(msg); err != nil {
			a.logger.Printf("Socket command %s failed: %v", msg.Command, err)
		}
	}

	if msg.ResponseChan != nil && response != nil {
		msg.ResponseChan <- response
	}
}

// applyRemoteCommand runs a dispatch identifier. An add command with text
// names the new property directly instead of opening the input.
func (a *App) applyRemoteCommand(msg socket.Message) error {
	cmd, err := selection.ParseCommand(msg.Command)
	if err != nil || cmd.Kind != selection.CommandAdd || strings.TrimSpace(msg.Text) == "" {
		return a.dispatch(msg.Command)
	}

	if open := len(a.form.Placeholders()); open > 0 {
		err := fmt.Errorf("%d property rows are still being edited", open)
		a.SetStatus(err.Error())
		return err
	}
	placeholder, err := a.ctrl.AddProperty(cmd)
	if err != nil {
		a.SetStatus(err.Error())
		return err
	}
	placeholder.Text = strings.TrimSpace(msg.Text)
	a.commitPlaceholder(placeholder)
	return nil
}
