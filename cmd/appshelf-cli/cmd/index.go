package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"appshelf/internal/application/commands"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Sync the SQLite search index",
	Long: `Load the catalog and bring the SQLite index in line with it.

The index is rebuilt from scratch when the appinfo content or the load
options changed since the last sync, and updated in place otherwise.

Examples:
  appshelf-cli index
  appshelf-cli index --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := loadCatalog()
		if err != nil {
			return err
		}

		key := result.Key
		if key == "" {
			// Without snapshots there is no content digest, so the index
			// cannot tell whether it is current.
			key = "uncached"
			indexForce = true
		}

		idx, err := services.OpenIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		sync := commands.NewSyncIndexCommand(idx, result.Catalog, key)
		sync.Force = indexForce
		stats, err := sync.Execute(context.Background())
		if err != nil {
			return err
		}

		mode := "incremental"
		if stats.Full {
			mode = "full"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s sync of %s: %d added, %d updated, %d deleted in %s\n",
			mode, idx.Path(), stats.Added, stats.Updated, stats.Deleted, stats.Duration)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&indexForce, "force", "f", false, "rebuild even if the index is current")
}
