/*
Copyright © 2026 kibanatools
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import documents from exported JSON files",
	Long: `Import reads each file as a single exported document and replays it
against the backend. The file must carry _index, _id and _type alongside
the _source payload. A failure aborts the run; documents imported before
the failing one stay imported.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := newStore()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		ctx := context.Background()
		for _, path := range args {
			doc, err := store.ReadDocumentFromFile(path)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", path, err)
			}
			if err := store.PutDocument(ctx, doc); err != nil {
				log.Fatalf("Failed to import %s: %v", path, err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
