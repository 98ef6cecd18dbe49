package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	importer "github.com/pstuifzand/tui-templategen/internal/import"
	"github.com/pstuifzand/tui-templategen/internal/storage"
)

func newImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <form.json> <file>",
		Short: "Apply a markdown checklist or column list to a saved form",
		Long: `Reads checkbox states from a markdown checklist written by export
--markdown, or the columns of a template YAML file or plain column list,
and stores them in the form. Column lists replace the whole selection.`,
		Args: cobra.ExactArgs(2),
		RunE: runImport,
	}

	importCmd.Flags().String("format", string(importer.FormatAuto), "input format: auto, markdown or columns")
	return importCmd
}

func runImport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format := importer.ImportFormat(formatName)
	if format == importer.FormatAuto {
		format = importer.DetectFormat(args[1])
	}

	store := storage.NewJSONStore(args[0])
	if !store.FileExists() {
		return fmt.Errorf("form file %s does not exist", args[0])
	}
	form, err := store.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}
	marks, err := importer.ImportFile(string(data), format)
	if err != nil {
		return err
	}

	result := importer.Apply(form, marks, format == importer.FormatColumns)
	for _, name := range result.Unknown {
		fmt.Fprintf(cmd.ErrOrStderr(), "unknown: %s\n", name)
	}
	if err := store.Save(form); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d marks to %s\n", result.Applied, args[0])
	return nil
}
