package commands

import (
	"context"

	"appshelf/internal/application"
	"appshelf/internal/ports"
	"appshelf/internal/vdf"
)

// DumpCommand decodes the raw entry tree for one app
type DumpCommand struct {
	source ports.EntrySource
	Path   string
	ID     int
}

// NewDumpCommand creates a new DumpCommand
func NewDumpCommand(source ports.EntrySource, path string, id int) *DumpCommand {
	return &DumpCommand{
		source: source,
		Path:   path,
		ID:     id,
	}
}

// Validate checks the command parameters
func (c *DumpCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the dump command
func (c *DumpCommand) Execute(ctx context.Context) (*vdf.Node, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, err := c.source.FindEntry(ctx, c.Path, c.ID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, &application.NotFoundError{ID: c.ID}
	}
	return root, nil
}
