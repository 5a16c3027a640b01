/*
Copyright © 2026 kibanatools
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// importPkgCmd represents the import-pkg command
var importPkgCmd = &cobra.Command{
	Use:   "import-pkg <file>...",
	Short: "Import every document from package files",
	Long: `Import-pkg reads each file as a package (an object with a docs array)
and replays every document in it against the backend. A failure aborts
the run; documents imported before the failing one stay imported.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := newStore()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		ctx := context.Background()
		for _, path := range args {
			pkg, err := store.ReadPackageFromFile(path)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", path, err)
			}
			if err := store.PutPackage(ctx, pkg); err != nil {
				log.Fatalf("Failed to import %s: %v", path, err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(importPkgCmd)
}
