// Package query parses JSON:API request parameters.
package query

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/conduit-lang/compound/pkg/compound"
)

// fieldsPattern matches query parameters like fields[typename]
var fieldsPattern = regexp.MustCompile(`^fields\[([^\]]+)\]$`)

// Params holds the parsed JSON:API parameters of a request.
type Params struct {
	Include []string
	Fields  compound.Fieldsets
	Filter  map[string]string
	Sort    []string
}

// InvalidParameterError reports a query parameter value the server cannot honour.
type InvalidParameterError struct {
	Parameter string
	Value     string
}

// Error implements the error interface
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value %q for parameter %q", e.Value, e.Parameter)
}

// Parse parses include, fields, filter and sort from the request.
func Parse(r *http.Request) Params {
	return Params{
		Include: ParseInclude(r),
		Fields:  ParseFields(r),
		Filter:  ParseFilter(r),
		Sort:    ParseSort(r),
	}
}

// ParseInclude parses the include query parameter into a slice of relationship paths.
// Example: ?include=author,comments.author returns ["author", "comments.author"]
// Returns an empty slice if the include parameter is not present.
func ParseInclude(r *http.Request) []string {
	return splitList(r.URL.Query().Get("include"))
}

// ParseFields parses the fields query parameters into sparse fieldsets.
// Example: ?fields[users]=name,email&fields[posts]=title
// Returns: {"users": ["name", "email"], "posts": ["title"]}
// Returns an empty map if no fields parameters are present.
func ParseFields(r *http.Request) compound.Fieldsets {
	result := make(compound.Fieldsets)

	for key, values := range r.URL.Query() {
		matches := fieldsPattern.FindStringSubmatch(key)
		if len(matches) != 2 {
			continue
		}

		typeName := matches[1]
		if len(values) == 0 {
			result[typeName] = []string{}
			continue
		}
		result[typeName] = splitList(values[0])
	}

	return result
}

// ParseSort parses the sort query parameter into a slice of sort fields.
// Example: ?sort=-created_at,title returns ["-created_at", "title"]
// The "-" prefix indicates descending sort order.
// Returns an empty slice if the sort parameter is not present.
func ParseSort(r *http.Request) []string {
	return splitList(r.URL.Query().Get("sort"))
}

// ValidateIncludes checks every include path against the allowed paths. A path
// is allowed when it is listed or is a prefix of a listed path.
func ValidateIncludes(includes []string, allowed []string) error {
	permitted := make(map[string]bool)
	for _, path := range allowed {
		segments := strings.Split(path, ".")
		for i := range segments {
			permitted[strings.Join(segments[:i+1], ".")] = true
		}
	}

	for _, include := range includes {
		if !permitted[include] {
			return &InvalidParameterError{Parameter: "include", Value: include}
		}
	}
	return nil
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
