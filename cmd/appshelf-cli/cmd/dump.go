package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"appshelf/internal/application"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <app-id>",
	Short: "Print the raw entry tree of one app",
	Long: `Decode the appinfo entry for one app and print every key in it,
including the ones the catalog does not keep.

The file is always scanned directly; snapshots only hold catalog records.

Example:
  appshelf-cli dump 570`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := application.ParseAppID(args[0])
		if err != nil {
			return err
		}

		root, err := services.DumpCommand(id).Execute(context.Background())
		if err != nil {
			return err
		}

		printTree(cmd.OutOrStdout(), root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
