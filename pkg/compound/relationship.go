package compound

import "maps"

// Relationship is a named link from a resource to a related resource, a
// collection of related resources, or nothing (a null relationship).
type Relationship struct {
	name  string
	data  Element
	links map[string]any
	meta  map[string]any
}

// NewRelationship creates a relationship pointing at data. A nil data value
// makes a null to-one relationship.
func NewRelationship(name string, data Element) *Relationship {
	return &Relationship{name: name, data: data}
}

// Name returns the relationship field name.
func (r *Relationship) Name() string { return r.name }

// Data returns the related element, or nil for a null relationship.
func (r *Relationship) Data() Element {
	if isNil(r.data) {
		return nil
	}
	return r.data
}

// Resources returns the related resources in order. It is empty for a null
// relationship or an empty collection.
func (r *Relationship) Resources() []*Resource {
	if isNil(r.data) {
		return nil
	}
	return r.data.Resources()
}

// SetLink sets a relationship-level link such as "self" or "related".
func (r *Relationship) SetLink(key string, value any) *Relationship {
	if r.links == nil {
		r.links = make(map[string]any)
	}
	r.links[key] = value
	return r
}

// SetMeta sets a relationship-level meta entry.
func (r *Relationship) SetMeta(key string, value any) *Relationship {
	if r.meta == nil {
		r.meta = make(map[string]any)
	}
	r.meta[key] = value
	return r
}

// Object renders the relationship object with resource linkage.
func (r *Relationship) Object() *RelationshipObject {
	obj := &RelationshipObject{
		Links: maps.Clone(r.links),
		Meta:  maps.Clone(r.meta),
	}
	if !isNil(r.data) {
		obj.Data = r.data.linkage()
	}
	return obj
}
