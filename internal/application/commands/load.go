package commands

import (
	"context"
	"fmt"

	"appshelf/internal/application"
	"appshelf/internal/domain"
	"appshelf/internal/ports"
)

// LoadResult is a loaded catalog with how it was obtained
type LoadResult struct {
	Catalog *domain.Catalog
	Stats   domain.LoadStats

	// Key identifies the source content and load options. It is empty
	// when no snapshot store was configured.
	Key string

	// CacheErr records a failure to store the snapshot. The load itself
	// still succeeded.
	CacheErr error
}

// CacheVariant names the load options that change a catalog's content,
// so snapshots taken with different options never collide.
func CacheVariant(policy domain.DuplicatePolicy, strictPlatforms bool) string {
	if strictPlatforms {
		return policy.String() + "-strict"
	}
	return policy.String()
}

// LoadCommand loads the catalog, going through the snapshot cache when
// one is configured
type LoadCommand struct {
	source    ports.CatalogSource
	snapshots ports.SnapshotStore
	Path      string
	Variant   string
	NoCache   bool
}

// NewLoadCommand creates a new LoadCommand. snapshots may be nil.
func NewLoadCommand(source ports.CatalogSource, snapshots ports.SnapshotStore, path, variant string) *LoadCommand {
	return &LoadCommand{
		source:    source,
		snapshots: snapshots,
		Path:      path,
		Variant:   variant,
	}
}

// Validate checks the command parameters
func (c *LoadCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the load command
func (c *LoadCommand) Execute(ctx context.Context) (*LoadResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.snapshots == nil {
		catalog, stats, err := c.source.Load(ctx, c.Path)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Catalog: catalog, Stats: stats}, nil
	}

	digest, err := c.snapshots.Digest(c.Path)
	if err != nil {
		return nil, err
	}
	key := digest
	if c.Variant != "" {
		key += "." + c.Variant
	}

	if !c.NoCache {
		catalog, ok, err := c.snapshots.Get(key)
		if err != nil {
			return nil, err
		}
		if ok {
			return &LoadResult{
				Catalog: catalog,
				Stats:   domain.LoadStats{Inserted: catalog.Len(), FromCache: true},
				Key:     key,
			}, nil
		}
	}

	catalog, stats, err := c.source.Load(ctx, c.Path)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Catalog: catalog, Stats: stats, Key: key}
	if err := c.snapshots.Put(key, catalog); err != nil {
		result.CacheErr = fmt.Errorf("failed to cache catalog: %w", err)
	}
	return result, nil
}
