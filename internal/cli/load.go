package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-templategen/internal/config"
	"github.com/pstuifzand/tui-templategen/internal/schema"
	"github.com/pstuifzand/tui-templategen/internal/storage"
)

func newLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load [schema...]",
		Short: "Build a form file from metadata schemas",
		Long: `Fetches schemas and writes them as a form file. Without arguments the
latest type schemas of the ingest environment are listed and loaded. With
--dir schemas are read from a local directory, every *.json file when no
schema is named.`,
		RunE: runLoad,
	}

	loadCmd.Flags().StringP("output", "o", "form.json", "form file to write")
	loadCmd.Flags().String("dir", "", "read schemas from this directory instead of the network")
	loadCmd.Flags().String("env", "", "ingest environment of the schema listing (default from config)")
	return loadCmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	output, _ := cmd.Flags().GetString("output")
	dir, _ := cmd.Flags().GetString("dir")
	env, _ := cmd.Flags().GetString("env")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var resolver schema.Resolver
	refs := args
	if dir != "" {
		resolver = schema.NewFileResolver(dir)
		if len(refs) == 0 {
			if refs, err = schemaFiles(dir); err != nil {
				return err
			}
		}
	} else {
		resolver = schema.NewHTTPResolver()
		if len(refs) == 0 {
			if refs, err = latestSchemas(ctx, cfg, env); err != nil {
				return err
			}
		}
	}
	if len(refs) == 0 {
		return fmt.Errorf("no schemas to load")
	}

	form, err := schema.NewLoader(resolver, cfg.ExcludedProperties).LoadForm(ctx, refs)
	if err != nil {
		return err
	}

	if err := storage.NewJSONStore(output).Save(form); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d schemas into %s\n", len(form.Groups), output)
	return nil
}

// latestSchemas lists the current type schemas of an ingest environment
func latestSchemas(ctx context.Context, cfg *config.Config, env string) ([]string, error) {
	if env == "" {
		env = cfg.IngestEnv
	}
	lister := schema.NewLister(cfg.SchemaEnv)
	return lister.LatestSchemaURLs(ctx, schema.ListingURL(cfg.ListingURL, env))
}

// schemaFiles returns the names of the schema documents in dir, sorted
func schemaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}
	var refs []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			refs = append(refs, e.Name())
		}
	}
	sort.Strings(refs)
	return refs, nil
}
