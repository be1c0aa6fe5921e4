package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"appshelf/internal/application"
	"appshelf/internal/application/commands"
	"appshelf/internal/domain"
)

var showFromIndex bool

var showCmd = &cobra.Command{
	Use:   "show <app-id>",
	Short: "Show one app",
	Long: `Show the record for one app id.

Examples:
  appshelf-cli show 570
  appshelf-cli show --index 570`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := application.ParseAppID(args[0])
		if err != nil {
			return err
		}

		var app *domain.App
		if showFromIndex {
			idx, err := services.OpenIndex()
			if err != nil {
				return err
			}
			defer idx.Close()
			if app, err = commands.NewIndexGetCommand(idx, id).Execute(ctx); err != nil {
				return err
			}
		} else {
			result, err := loadCatalog()
			if err != nil {
				return err
			}
			if app, err = commands.NewShowCommand(result.Catalog, id).Execute(ctx); err != nil {
				return err
			}
		}

		printAppDetail(cmd.OutOrStdout(), *app)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showFromIndex, "index", false, "read from the SQLite index instead of appinfo")
}
