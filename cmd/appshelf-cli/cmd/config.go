package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"appshelf/internal/adapters/editor"
	"appshelf/internal/config"
	"appshelf/internal/ports"
)

var configEditor ports.EditorOpener = editor.NewOpener()

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the configuration file",
	Long: `Inspect or edit the appshelf configuration file.

The file location comes from APPSHELF_CONFIG, falling back to
$XDG_CONFIG_HOME/appshelf/config.yaml.`,
	// Config commands need the settings but none of the adapters. path
	// and edit must work even when the file does not parse.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "path", "edit":
			return nil
		}
		return setup(cmd)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the file, environment
variables and command-line flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", config.Path())
		_, err = out.Write(data)
		return err
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	Long: `Open the configuration file in $VISUAL or $EDITOR. A file with the
default settings is written first if none exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		if err := configEditor.OpenFile(path); err != nil {
			return err
		}

		// Report mistakes while the file is still fresh in mind
		_, err := config.LoadFile(path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
}
