/*
Copyright © 2026 kibanatools
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/kibanatools/kbackup/service"
	"github.com/kibanatools/kbackup/types"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [all|config|<dashboard-id>]",
	Short: "Export configuration objects to individual JSON files",
	Long: `Export writes one JSON file per object, named {type}-{id}.json, to the
export directory.

With no selector or with "all", every known object type is exported. With
"config", only the config documents are exported. Any other value is
treated as a dashboard id and exports that dashboard together with the
visualizations and saved searches its panels reference.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, cfg, err := newStore()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		set, err := fetchSelection(context.Background(), store, selector(args))
		if err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		if err := store.WriteDocumentsToFile(set, cfg.ExportDir); err != nil {
			log.Fatalf("Failed to write files: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func selector(args []string) string {
	if len(args) == 0 {
		return "all"
	}
	return args[0]
}

// fetchSelection resolves a CLI selector into the documents it names.
func fetchSelection(ctx context.Context, store *service.ConfigStore, sel string) (types.DocumentSet, error) {
	switch sel {
	case "all":
		set := make(types.DocumentSet)
		for _, typeName := range []string{
			types.TypeConfig,
			types.TypeDashboard,
			types.TypeVisualization,
			types.TypeSearch,
		} {
			docs, err := store.GetDocumentsByType(ctx, typeName)
			if err != nil {
				return nil, err
			}
			for id, doc := range docs {
				set[id] = doc
			}
		}
		return set, nil
	case "config":
		return store.GetConfigs(ctx)
	default:
		return store.GetDashboardClosure(ctx, sel)
	}
}
