package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"appshelf/internal/application"
	"appshelf/internal/application/commands"
	"appshelf/internal/domain"
)

var (
	listTypes     []string
	listPlatforms string
	listLimit     int
	listFromIndex bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List apps in the catalog",
	Long: `List apps ordered by id, optionally filtered by type and platform.

Examples:
  appshelf-cli list
  appshelf-cli list --type game --platform linux
  appshelf-cli list --type dlc,tool --limit 20
  appshelf-cli list --index --type game`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		filter, err := application.BuildFilter(listTypes, listPlatforms, listLimit)
		if err != nil {
			return err
		}

		var apps []domain.App
		if listFromIndex {
			idx, err := services.OpenIndex()
			if err != nil {
				return err
			}
			defer idx.Close()
			if apps, err = idx.List(filter); err != nil {
				return err
			}
		} else {
			result, err := loadCatalog()
			if err != nil {
				return err
			}
			if apps, err = commands.NewListCommand(result.Catalog, filter).Execute(ctx); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if len(apps) == 0 {
			fmt.Fprintln(out, "No apps found")
			return nil
		}
		for _, app := range apps {
			printApp(out, app)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringSliceVarP(&listTypes, "type", "t", nil, "app types to include (game, application, demo, dlc, media, tool, other, unknown)")
	listCmd.Flags().StringVarP(&listPlatforms, "platform", "p", "", "platforms the app must support (windows, macos, linux)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of apps (0 for all)")
	listCmd.Flags().BoolVar(&listFromIndex, "index", false, "read from the SQLite index instead of appinfo")
}
