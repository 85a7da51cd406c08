package fixture

import (
	"fmt"

	"github.com/conduit-lang/compound/pkg/web/query"
)

// Filter returns the records matching every filter. A filter value lists
// comma separated alternatives compared with the string form of the field;
// filtering on a missing attribute matches nothing. Unknown fields are
// reported as *query.InvalidParameterError.
func Filter(records []*Record, filters map[string]string) ([]*Record, error) {
	if len(filters) == 0 {
		return records, nil
	}
	if err := query.ValidateFilterFields(filters, fieldNames(records)); err != nil {
		return nil, err
	}

	accepted := make(map[string]map[string]bool, len(filters))
	for field, value := range filters {
		accepted[field] = make(map[string]bool)
		for _, v := range query.FilterValues(value) {
			accepted[field][v] = true
		}
	}

	matched := make([]*Record, 0, len(records))
	for _, rec := range records {
		if rec.matches(accepted) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (r *Record) matches(accepted map[string]map[string]bool) bool {
	for field, values := range accepted {
		v := r.value(field)
		if v == nil || !values[fmt.Sprint(v)] {
			return false
		}
	}
	return true
}
