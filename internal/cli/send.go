package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-templategen/internal/socket"
)

func newSendCmd() *cobra.Command {
	sendCmd := &cobra.Command{
		Use:   "send <command>",
		Short: "Send a command to a running tgen instance",
		Long: `Sends a control identifier to the most recently started tgen instance.
Commands are select:<schema>, unselect:<schema>, add:<schema>, select-all,
expand-all, state and save. With --text an add command names the new
property directly.`,
		Args: cobra.ExactArgs(1),
		RunE: runSend,
	}

	sendCmd.Flags().String("text", "", "property name for add commands")
	return sendCmd
}

func runSend(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	command := strings.TrimSpace(args[0])
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	socketPath, pid, err := socket.FindRunningInstance()
	if err != nil {
		return err
	}
	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	response, err := client.Send(socket.Message{Command: command, Text: strings.TrimSpace(text)})
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}

	fmt.Fprintln(cmd.OutOrStdout(), response.Message)
	return nil
}
