package commands

import (
	"context"

	"appshelf/internal/application"
	"appshelf/internal/domain"
)

// ShowCommand looks up one app by id
type ShowCommand struct {
	catalog *domain.Catalog
	ID      int
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(catalog *domain.Catalog, id int) *ShowCommand {
	return &ShowCommand{catalog: catalog, ID: id}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*domain.App, error) {
	app, ok := c.catalog.Get(c.ID)
	if !ok {
		return nil, &application.NotFoundError{ID: c.ID}
	}
	return &app, nil
}
