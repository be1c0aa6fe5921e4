package commands

import (
	"context"

	"appshelf/internal/domain"
)

// StatsCommand summarizes a catalog
type StatsCommand struct {
	catalog *domain.Catalog
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(catalog *domain.Catalog) *StatsCommand {
	return &StatsCommand{catalog: catalog}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (domain.Summary, error) {
	return domain.Summarize(c.catalog), nil
}
