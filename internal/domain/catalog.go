package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DuplicatePolicy decides what a Catalog does when an id is inserted twice
type DuplicatePolicy int

const (
	DuplicateKeepFirst DuplicatePolicy = iota // later entries with a known id are dropped
	DuplicateKeepLast                         // later entries replace earlier ones
	DuplicateError                            // a repeated id fails the load
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateKeepLast:
		return "last"
	case DuplicateError:
		return "error"
	default:
		return "first"
	}
}

// ParseDuplicatePolicy parses "first", "last" or "error"
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return DuplicateKeepFirst, nil
	case "last":
		return DuplicateKeepLast, nil
	case "error":
		return DuplicateError, nil
	default:
		return DuplicateKeepFirst, fmt.Errorf("invalid duplicate policy %q (want first, last or error)", s)
	}
}

// DuplicateIDError is returned by Insert under DuplicateError
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate app id %d", e.ID)
}

// Catalog maps app ids to records
type Catalog struct {
	Apps   map[int]App
	Policy DuplicatePolicy
}

// NewCatalog creates an empty catalog with the given duplicate policy
func NewCatalog(policy DuplicatePolicy) *Catalog {
	return &Catalog{
		Apps:   make(map[int]App),
		Policy: policy,
	}
}

// Insert adds app under its id. It reports whether the catalog changed.
// A repeated id is resolved by the catalog's policy.
func (c *Catalog) Insert(app App) (bool, error) {
	if _, exists := c.Apps[app.ID]; exists {
		switch c.Policy {
		case DuplicateKeepLast:
			c.Apps[app.ID] = app
			return true, nil
		case DuplicateError:
			return false, &DuplicateIDError{ID: app.ID}
		default:
			return false, nil
		}
	}
	c.Apps[app.ID] = app
	return true, nil
}

// Len returns the number of apps
func (c *Catalog) Len() int {
	return len(c.Apps)
}

// Get returns the app with the given id
func (c *Catalog) Get(id int) (App, bool) {
	app, ok := c.Apps[id]
	return app, ok
}

// Sorted returns all apps ordered by id
func (c *Catalog) Sorted() []App {
	apps := make([]App, 0, len(c.Apps))
	for _, app := range c.Apps {
		apps = append(apps, app)
	}
	SortApps(apps)
	return apps
}

// Filter selects apps from a catalog listing
type Filter struct {
	Types     []AppType // empty matches every type
	Platforms Platforms // every bit must be supported; PlatformNone matches all
	Limit     int       // 0 means no limit
}

// Matches reports whether app passes the filter, ignoring Limit
func (f Filter) Matches(app App) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, app.Type) {
		return false
	}
	return app.Platforms.Has(f.Platforms)
}

// List returns the apps that match f, ordered by id
func (c *Catalog) List(f Filter) []App {
	var result []App
	for _, app := range c.Sorted() {
		if !f.Matches(app) {
			continue
		}
		result = append(result, app)
		if f.Limit > 0 && len(result) >= f.Limit {
			break
		}
	}
	return result
}

// SortApps sorts apps by id in ascending order
func SortApps(apps []App) {
	slices.SortFunc(apps, func(a, b App) int {
		return a.ID - b.ID
	})
}

// LoadStats counts what happened during one catalog load
type LoadStats struct {
	Matches    int // signature occurrences found
	Decoded    int // entries decoded into a tree
	Skipped    int // entries abandoned after a decode failure
	NoID       int // decoded entries without a usable id
	Duplicates int // records whose id was already present
	Inserted   int // records that changed the catalog
	Bytes      int64
	Duration   time.Duration
	FromCache  bool
}

// Summary aggregates a catalog for display
type Summary struct {
	Total      int
	Named      int
	ByType     map[AppType]int
	ByPlatform map[string]int
}

// Summarize counts apps per type and per platform
func Summarize(c *Catalog) Summary {
	s := Summary{
		Total:      c.Len(),
		ByType:     make(map[AppType]int),
		ByPlatform: make(map[string]int),
	}
	for _, app := range c.Apps {
		if app.HasName() {
			s.Named++
		}
		s.ByType[app.Type]++
		for _, pn := range platformNames {
			if app.Platforms.Has(pn.bit) {
				s.ByPlatform[pn.name]++
			}
		}
	}
	return s
}
