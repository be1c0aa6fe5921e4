package commands

import (
	"context"

	"appshelf/internal/application"
	"appshelf/internal/domain"
)

// ListCommand lists catalog apps matching a filter, ordered by id
type ListCommand struct {
	catalog *domain.Catalog
	Filter  domain.Filter
}

// NewListCommand creates a new ListCommand
func NewListCommand(catalog *domain.Catalog, filter domain.Filter) *ListCommand {
	return &ListCommand{
		catalog: catalog,
		Filter:  filter,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) ([]domain.App, error) {
	if err := application.ValidateLimit(c.Filter.Limit); err != nil {
		return nil, err
	}
	return c.catalog.List(c.Filter), nil
}
