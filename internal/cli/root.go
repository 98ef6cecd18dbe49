package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-templategen/internal/app"
	"github.com/pstuifzand/tui-templategen/internal/config"
	"github.com/pstuifzand/tui-templategen/internal/socket"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Execute runs the command line
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tgen [form.json]",
		Short: "Pick metadata schema properties and write a spreadsheet template",
		Long: `tgen shows metadata schemas as a checkbox form. Select the properties
you want as columns, add properties the schemas do not have, and write the
result as a spreadsheet template YAML file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().String("config", "", "config file path (default ~/.config/tui-templategen/config.toml)")
	rootCmd.Flags().Bool("debug", false, "Enable debug mode (logs status messages)")

	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// loadConfig reads the file named by --config, or the standard location
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func runTUI(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	application, err := app.NewApp(filePath, cfg)
	if err != nil {
		return err
	}
	application.SetDebugMode(debug)

	server, err := socket.NewServer(os.Getpid())
	if err != nil {
		log.Printf("Socket server disabled: %v", err)
	} else {
		server.Start()
		defer server.Stop()
		application.SetSocketServer(server)
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}
