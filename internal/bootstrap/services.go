// Package bootstrap wires configuration to the adapters the binaries use.
package bootstrap

import (
	"appshelf/internal/adapters/appinfo"
	"appshelf/internal/adapters/snapshot"
	"appshelf/internal/adapters/sqlite"
	"appshelf/internal/application/commands"
	"appshelf/internal/config"
)

// Services holds the adapters built from one configuration
type Services struct {
	Config *config.Config
	Loader *appinfo.Loader

	// Snapshots is nil when cache_dir is empty.
	Snapshots *snapshot.Store
}

// New validates cfg and builds the adapters it describes
func New(cfg *config.Config) (*Services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Services{
		Config: cfg,
		Loader: appinfo.NewLoader(appinfo.Options{
			Duplicates: cfg.DuplicatePolicy(),
			Extract:    appinfo.ExtractOptions{StrictPlatforms: cfg.StrictPlatforms},
		}),
	}

	if cfg.CacheDir != "" {
		compression, err := snapshot.ParseCompression(cfg.Compression)
		if err != nil {
			return nil, err
		}
		s.Snapshots = snapshot.NewStore(cfg.CacheDir, compression)
	}
	return s, nil
}

// LoadCommand returns a command that loads the configured appinfo file,
// through the snapshot cache unless noCache is set
func (s *Services) LoadCommand(noCache bool) *commands.LoadCommand {
	variant := commands.CacheVariant(s.Config.DuplicatePolicy(), s.Config.StrictPlatforms)

	var cmd *commands.LoadCommand
	if s.Snapshots == nil {
		cmd = commands.NewLoadCommand(s.Loader, nil, s.Config.AppInfoPath, variant)
	} else {
		cmd = commands.NewLoadCommand(s.Loader, s.Snapshots, s.Config.AppInfoPath, variant)
	}
	cmd.NoCache = noCache
	return cmd
}

// DumpCommand returns a command that decodes the raw entry for id
func (s *Services) DumpCommand(id int) *commands.DumpCommand {
	return commands.NewDumpCommand(s.Loader, s.Config.AppInfoPath, id)
}

// OpenIndex opens the SQLite index in the configured directory. The
// caller closes it.
func (s *Services) OpenIndex() (*sqlite.Index, error) {
	idx := sqlite.NewIndex()
	if err := idx.Open(s.Config.IndexDir); err != nil {
		return nil, err
	}
	return idx, nil
}
