/*
Copyright © 2026 kibanatools
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// exportPkgCmd represents the export-pkg command
var exportPkgCmd = &cobra.Command{
	Use:   "export-pkg [all|config|<dashboard-id>]",
	Short: "Export configuration objects as a single package file",
	Long: `Export-pkg bundles the selected objects into one {selector}-Pkg.json file
in the export directory. Selectors work the same way as for export.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, cfg, err := newStore()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		sel := selector(args)
		set, err := fetchSelection(context.Background(), store, sel)
		if err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		if _, err := store.WritePackageToFile(sel, set, cfg.ExportDir); err != nil {
			log.Fatalf("Failed to write package: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportPkgCmd)
}
