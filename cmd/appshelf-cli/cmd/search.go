package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"appshelf/internal/application/commands"
)

var (
	searchLimit     int
	searchFromIndex bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search apps by name or id",
	Long: `Search for apps by name or app id.

Results are ranked by relevance using fuzzy matching. Queries need at
least two characters.

Examples:
  appshelf-cli search portal
  appshelf-cli search 4000
  appshelf-cli search --index "half life"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		ctx := context.Background()

		var results []commands.SearchResult
		if searchFromIndex {
			idx, err := services.OpenIndex()
			if err != nil {
				return err
			}
			defer idx.Close()
			results, err = commands.NewIndexSearchCommand(idx, query, searchLimit).Execute(ctx)
			if err != nil {
				return err
			}
		} else {
			result, err := loadCatalog()
			if err != nil {
				return err
			}
			results, err = commands.NewSearchCommand(result.Catalog, query, searchLimit).Execute(ctx)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}
		for _, r := range results {
			printApp(out, r.App)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (0 for all)")
	searchCmd.Flags().BoolVar(&searchFromIndex, "index", false, "search the SQLite index instead of appinfo")
}
