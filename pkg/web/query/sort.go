package query

import (
	"slices"
	"strings"
)

// SortField is one parsed sort key
type SortField struct {
	Name       string
	Descending bool
}

// ParseSortFields splits sort keys into names and directions.
// Example: ["-views", "title"] returns [{views true} {title false}]
func ParseSortFields(sorts []string) []SortField {
	fields := make([]SortField, 0, len(sorts))
	for _, s := range sorts {
		fields = append(fields, SortField{
			Name:       strings.TrimPrefix(s, "-"),
			Descending: strings.HasPrefix(s, "-"),
		})
	}
	return fields
}

// ValidateSortFields checks that every sort field (without its '-' prefix)
// is one of validFields. The first unknown field is reported as an
// *InvalidParameterError on the sort parameter.
func ValidateSortFields(sorts []string, validFields []string) error {
	for _, s := range sorts {
		if !slices.Contains(validFields, strings.TrimPrefix(s, "-")) {
			return &InvalidParameterError{Parameter: "sort", Value: s}
		}
	}
	return nil
}
