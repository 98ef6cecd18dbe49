package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-templategen/internal/export"
	"github.com/pstuifzand/tui-templategen/internal/storage"
)

func newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export <form.json>",
		Short: "Write the template YAML of a saved form",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	exportCmd.Flags().StringP("output", "o", "", "file to write (default from config)")
	exportCmd.Flags().Bool("markdown", false, "write a markdown checklist instead of YAML")
	return exportCmd
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	markdown, _ := cmd.Flags().GetBool("markdown")

	store := storage.NewJSONStore(args[0])
	if !store.FileExists() {
		return fmt.Errorf("form file %s does not exist", args[0])
	}
	form, err := store.Load()
	if err != nil {
		return err
	}

	if output == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		output = cfg.Output
		if markdown {
			output = strings.TrimSuffix(output, ".yaml") + ".md"
		}
	}

	if markdown {
		err = export.ExportToMarkdown(form, output)
	} else {
		err = export.WriteYAML(form, output)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}
