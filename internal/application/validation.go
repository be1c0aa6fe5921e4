package application

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"appshelf/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to words for error messages
// (e.g., "appID" -> "app ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"appID":   "app ID",
		"path":    "appinfo path",
		"appType": "app type",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ParseAppID parses a non-negative 32-bit app id. The error wraps
// ErrInvalidID.
func ParseAppID(s string) (int, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 || id > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q is not an app id", ErrInvalidID, s)
	}
	return int(id), nil
}

// ValidateLimit rejects negative result limits
func ValidateLimit(limit int) error {
	if limit < 0 {
		return &ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("must not be negative, got %d", limit),
		}
	}
	return nil
}

// ParseTypes parses app type names such as "game" or "dlc"
func ParseTypes(names []string) ([]domain.AppType, error) {
	var types []domain.AppType
	for _, name := range names {
		t, ok := domain.ParseAppType(name)
		if !ok {
			return nil, &ValidationError{
				Field:   "appType",
				Message: fmt.Sprintf("unknown %s: %q", formatFieldName("appType"), name),
			}
		}
		types = append(types, t)
	}
	return types, nil
}

// ParsePlatforms parses a comma-separated platform list into a filter mask
func ParsePlatforms(s string) (domain.Platforms, error) {
	p, err := domain.ParsePlatforms(s)
	if err != nil {
		return domain.PlatformNone, &ValidationError{Field: "platform", Message: err.Error()}
	}
	return p, nil
}

// BuildFilter validates list options and assembles a catalog filter
func BuildFilter(typeNames []string, platforms string, limit int) (domain.Filter, error) {
	if err := ValidateLimit(limit); err != nil {
		return domain.Filter{}, err
	}
	types, err := ParseTypes(typeNames)
	if err != nil {
		return domain.Filter{}, err
	}
	mask, err := ParsePlatforms(platforms)
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{Types: types, Platforms: mask, Limit: limit}, nil
}
