package ports

import "appshelf/internal/domain"

// CatalogIndex is a persistent, queryable copy of a catalog. It is keyed
// by the digest of the source file so a stale index can be detected
// without parsing.
type CatalogIndex interface {
	// Lifecycle
	Open(dir string) error
	Close() error

	// Sync operations
	NeedsRebuild(key string) bool
	Sync(catalog *domain.Catalog, key string) (*domain.SyncStats, error)
	SyncFull(catalog *domain.Catalog, key string) (*domain.SyncStats, error)

	// Queries
	Get(id int) (*domain.App, error)
	Search(query string, limit int) ([]domain.App, error)
	List(filter domain.Filter) ([]domain.App, error)
	Count() (int, error)

	BeginTx() (IndexTx, error)
}

// IndexTx represents a transaction for atomic index updates
type IndexTx interface {
	UpsertApp(app domain.App) error
	DeleteApp(id int) error
	SetMeta(key, value string) error

	// Transaction control
	Commit() error
	Rollback() error
}
