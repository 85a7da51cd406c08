package query

import (
	"net/http"
	"regexp"
	"slices"
)

// filterPattern matches query parameters like filter[status]
var filterPattern = regexp.MustCompile(`^filter\[([^\]]+)\]$`)

// ParseFilter parses the filter query parameters into a map of filter keys to values.
// Example: ?filter[status]=published&filter[author]=9
// Returns: {"status": "published", "author": "9"}
// Returns an empty map if no filter parameters are present.
func ParseFilter(r *http.Request) map[string]string {
	result := make(map[string]string)

	for key, values := range r.URL.Query() {
		matches := filterPattern.FindStringSubmatch(key)
		if len(matches) != 2 || len(values) == 0 {
			continue
		}
		result[matches[1]] = values[0]
	}

	return result
}

// FilterValues splits a filter value into the alternatives it accepts.
// Example: "draft, published" returns ["draft", "published"]
func FilterValues(value string) []string {
	return splitList(value)
}

// ValidateFilterFields checks every filter key against validFields. The first
// unknown key, in sorted order, is reported as an *InvalidParameterError naming
// the filter[key] parameter.
func ValidateFilterFields(filters map[string]string, validFields []string) error {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if !slices.Contains(validFields, key) {
			return &InvalidParameterError{Parameter: "filter[" + key + "]", Value: key}
		}
	}
	return nil
}
