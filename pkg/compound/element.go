package compound

// Element is the primary data of a document or the target of a relationship.
// It is either a *Resource (single) or a *Collection (many); a nil Element means
// no data.
type Element interface {
	// Resources returns the resources held by the element, in order.
	Resources() []*Resource

	render(fields Fieldsets) any
	linkage() any
}

var (
	_ Element = (*Resource)(nil)
	_ Element = (*Collection)(nil)
)

// isNil reports whether e carries no data, including typed nil pointers.
func isNil(e Element) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Resource:
		return v == nil
	case *Collection:
		return v == nil
	}
	return false
}
