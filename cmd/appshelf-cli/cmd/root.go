package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"appshelf/internal/application/commands"
	"appshelf/internal/bootstrap"
	"appshelf/internal/config"
)

var (
	appInfoPath     string
	duplicates      = &duplicatesFlag{}
	strictPlatforms bool
	noCache         bool
	verbose         bool

	cfg      *config.Config
	services *bootstrap.Services
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "appshelf-cli",
	Short: "Query the Steam appinfo cache",
	Long: `appshelf-cli reads the Steam client's binary appinfo cache and lists,
searches and summarizes the applications recorded in it.

Parsed catalogs are cached as snapshots keyed by the file's content, so
repeated runs skip parsing until Steam rewrites the file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := setup(cmd); err != nil {
			return err
		}
		s, err := bootstrap.New(cfg)
		if err != nil {
			return fmt.Errorf("invalid configuration (%s): %w", config.Path(), err)
		}
		services = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// setup loads the config file, applies flag overrides and installs the
// logger
func setup(cmd *cobra.Command) error {
	l, err := bootstrap.NewLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	bootstrap.InstallLogger(logger)

	c, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("appinfo") {
		c.AppInfoPath = config.ExpandHome(appInfoPath)
	}
	if flags.Changed("duplicates") {
		c.Duplicates = duplicates.String()
	}
	if flags.Changed("strict-platforms") {
		c.StrictPlatforms = strictPlatforms
	}
	cfg = c
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&appInfoPath, "appinfo", config.DefaultAppInfoPath, "path to appinfo.vdf (overrides config)")
	flags.Var(duplicates, "duplicates", "duplicate app id policy: first, last or error")
	flags.BoolVar(&strictPlatforms, "strict-platforms", false, "limit platforms to those named in oslist")
	flags.BoolVar(&noCache, "no-cache", false, "parse appinfo even if a snapshot exists")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}

// loadCatalog loads the configured appinfo file and reports cache
// failures without failing the command
func loadCatalog() (*commands.LoadResult, error) {
	result, err := services.LoadCommand(noCache).Execute(context.Background())
	if err != nil {
		return nil, err
	}
	if result.CacheErr != nil {
		logger.Warn("snapshot not stored", zap.Error(result.CacheErr))
	}
	return result, nil
}
