package ports

import "appshelf/internal/domain"

// SnapshotStore caches parsed catalogs on disk
type SnapshotStore interface {
	// Digest returns the content digest of the source file at path
	Digest(path string) (string, error)

	// Get returns the catalog stored under key. ok is false on a miss or
	// when the stored snapshot is unreadable.
	Get(key string) (catalog *domain.Catalog, ok bool, err error)

	// Put stores catalog under key, replacing any previous snapshot
	Put(key string, catalog *domain.Catalog) error
}
