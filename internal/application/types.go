package application

import "appshelf/internal/domain"

// Re-export domain types for use by adapters
type (
	App             = domain.App
	AppType         = domain.AppType
	Platforms       = domain.Platforms
	Catalog         = domain.Catalog
	Filter          = domain.Filter
	LoadStats       = domain.LoadStats
	SyncStats       = domain.SyncStats
	Summary         = domain.Summary
	DuplicatePolicy = domain.DuplicatePolicy
)

// Re-export app types
const (
	AppTypeUnknown     = domain.AppTypeUnknown
	AppTypeApplication = domain.AppTypeApplication
	AppTypeDemo        = domain.AppTypeDemo
	AppTypeAddOn       = domain.AppTypeAddOn
	AppTypeGame        = domain.AppTypeGame
	AppTypeMedia       = domain.AppTypeMedia
	AppTypeTool        = domain.AppTypeTool
	AppTypeOther       = domain.AppTypeOther
)

// ParseDuplicatePolicy parses "first", "last" or "error"
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	return domain.ParseDuplicatePolicy(s)
}
