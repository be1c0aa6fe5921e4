package commands

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"appshelf/internal/application"
	"appshelf/internal/domain"
)

// SearchResult wraps domain.App with a relevance score
type SearchResult struct {
	domain.App
	Score int
}

// SearchCommand searches the catalog with fuzzy matching on names and ids
type SearchCommand struct {
	catalog *domain.Catalog
	Query   string
	Limit   int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(catalog *domain.Catalog, query string, limit int) *SearchCommand {
	return &SearchCommand{
		catalog: catalog,
		Query:   query,
		Limit:   limit,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if err := application.ValidateLimit(c.Limit); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(c.Query)) < 2 {
		return nil, nil
	}

	return truncate(FuzzySort(c.catalog.Sorted(), c.Query), c.Limit), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && isSeparator(target[i-1]) {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '.' || b == '-' || b == ':' || b == '_'
}

// FuzzySort scores apps against the query and returns the matches by
// descending score. Ties keep the input order, so id-sorted input stays
// id-sorted within a score.
func FuzzySort(apps []domain.App, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(apps))

	for _, app := range apps {
		best := FuzzyScore(strconv.Itoa(app.ID), query)
		if app.HasName() {
			best = max(best, FuzzyScore(*app.Name, query))
		}

		if best > 0 {
			scored = append(scored, SearchResult{
				App:   app,
				Score: best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
