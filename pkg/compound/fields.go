package compound

import "maps"

// Fieldsets restricts the attributes rendered per resource type, as requested
// with fields[type]=a,b. Types without an entry keep every attribute.
//
// type and id are always rendered, and so are relationships. Fieldsets only
// affect rendering: a resource whose attributes are all filtered out is still
// included when it carries attributes.
type Fieldsets map[string][]string

func (f Fieldsets) filter(typ string, attrs map[string]any) map[string]any {
	fields, ok := f[typ]
	if !ok {
		return maps.Clone(attrs)
	}

	// Build a set of allowed fields for O(1) lookup
	allowed := make(map[string]bool, len(fields))
	for _, field := range fields {
		allowed[field] = true
	}

	filtered := make(map[string]any, len(fields))
	for key, value := range attrs {
		if allowed[key] {
			filtered[key] = value
		}
	}
	return filtered
}
