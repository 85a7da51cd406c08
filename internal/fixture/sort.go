package fixture

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/conduit-lang/compound/pkg/web/query"
)

// fieldNames returns "id" and every attribute name used by records, sorted.
func fieldNames(records []*Record) []string {
	names := map[string]bool{"id": true}
	for _, rec := range records {
		for name := range rec.Attributes {
			names[name] = true
		}
	}
	return slices.Sorted(maps.Keys(names))
}

// Sort orders records by the given sort fields. Fields prefixed with '-' sort
// descending. "id" sorts by record id; any other field must be an attribute of
// at least one record, otherwise an *query.InvalidParameterError is returned.
func Sort(records []*Record, sorts []string) error {
	if len(sorts) == 0 {
		return nil
	}
	if err := query.ValidateSortFields(sorts, fieldNames(records)); err != nil {
		return err
	}

	fields := query.ParseSortFields(sorts)
	slices.SortStableFunc(records, func(a, b *Record) int {
		for _, f := range fields {
			c := compareValues(a.value(f.Name), b.value(f.Name))
			if f.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}

// compareValues orders missing values first, numbers numerically and
// everything else by its string form.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
