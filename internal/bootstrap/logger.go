package bootstrap

import (
	"go.uber.org/zap"

	"appshelf/internal/adapters/appinfo"
	"appshelf/internal/adapters/snapshot"
	"appshelf/internal/adapters/sqlite"
)

// NewLogger builds the process logger. verbose gives a development logger
// at debug level; otherwise only warnings and errors are written, as JSON
// on stderr.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Sampling = nil
	return cfg.Build()
}

// InstallLogger hands l to every package that logs
func InstallLogger(l *zap.Logger) {
	appinfo.SetLogger(l.Named("appinfo"))
	snapshot.SetLogger(l.Named("snapshot"))
	sqlite.SetLogger(l.Named("sqlite"))
}
