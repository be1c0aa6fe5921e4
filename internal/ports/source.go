package ports

import (
	"context"

	"appshelf/internal/domain"
	"appshelf/internal/vdf"
)

// CatalogSource loads a catalog from an appinfo cache file
type CatalogSource interface {
	// Load parses the whole file. Entries that fail to decode are
	// skipped and counted in the returned stats; only I/O failures,
	// duplicate-id errors under DuplicateError and cancellation fail the
	// load.
	Load(ctx context.Context, path string) (*domain.Catalog, domain.LoadStats, error)
}

// EntrySource gives access to the raw decoded tree of a single entry
type EntrySource interface {
	FindEntry(ctx context.Context, path string, id int) (*vdf.Node, error)
}
