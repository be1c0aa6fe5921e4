package commands

import (
	"context"

	"appshelf/internal/application"
	"appshelf/internal/domain"
	"appshelf/internal/ports"
)

// SyncIndexCommand brings the search index in line with a catalog.
// The index is rebuilt when its key no longer matches or when forced,
// and updated in place otherwise.
type SyncIndexCommand struct {
	index   ports.CatalogIndex
	catalog *domain.Catalog
	Key     string
	Force   bool
}

// NewSyncIndexCommand creates a new SyncIndexCommand
func NewSyncIndexCommand(index ports.CatalogIndex, catalog *domain.Catalog, key string) *SyncIndexCommand {
	return &SyncIndexCommand{
		index:   index,
		catalog: catalog,
		Key:     key,
	}
}

// Execute runs the sync
func (c *SyncIndexCommand) Execute(ctx context.Context) (*domain.SyncStats, error) {
	if c.Force || c.index.NeedsRebuild(c.Key) {
		return c.index.SyncFull(c.catalog, c.Key)
	}
	return c.index.Sync(c.catalog, c.Key)
}

// IndexSearchCommand searches the persistent index instead of a loaded
// catalog. Results are ranked the same way as SearchCommand.
type IndexSearchCommand struct {
	index ports.CatalogIndex
	Query string
	Limit int
}

// NewIndexSearchCommand creates a new IndexSearchCommand
func NewIndexSearchCommand(index ports.CatalogIndex, query string, limit int) *IndexSearchCommand {
	return &IndexSearchCommand{
		index: index,
		Query: query,
		Limit: limit,
	}
}

// Execute runs the index search
func (c *IndexSearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if err := application.ValidateLimit(c.Limit); err != nil {
		return nil, err
	}
	if len(c.Query) < 2 {
		return nil, nil
	}

	candidates, err := c.index.Search(c.Query, 0)
	if err != nil {
		return nil, err
	}
	return truncate(FuzzySort(candidates, c.Query), c.Limit), nil
}

// IndexGetCommand looks up one app in the persistent index
type IndexGetCommand struct {
	index ports.CatalogIndex
	ID    int
}

// NewIndexGetCommand creates a new IndexGetCommand
func NewIndexGetCommand(index ports.CatalogIndex, id int) *IndexGetCommand {
	return &IndexGetCommand{index: index, ID: id}
}

// Execute runs the lookup
func (c *IndexGetCommand) Execute(ctx context.Context) (*domain.App, error) {
	app, err := c.index.Get(c.ID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &application.NotFoundError{ID: c.ID}
	}
	return app, nil
}
